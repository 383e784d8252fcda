package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/huddlehq/huddle/internal/assistant"
	"github.com/huddlehq/huddle/internal/config"
	"github.com/huddlehq/huddle/internal/notify"
	"github.com/huddlehq/huddle/internal/server"
	"github.com/huddlehq/huddle/internal/service"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if addr != "" {
				cfg.Addr = addr
			}
			logger := newLogger(cfg)

			application, err := openApp(cfg)
			if err != nil {
				return err
			}
			defer application.Close()

			if cfg.SeedOnStart {
				teams, err := application.Teams.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(teams) == 0 {
					if err := seed(cmd.Context(), application, cmd.OutOrStdout()); err != nil {
						return err
					}
				}
			}

			registry := prometheus.NewRegistry()
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			hub := notify.NewHub(registry, logger)
			defer hub.Close()

			store := service.NewAssistantStore(
				application.TaskRepo, application.UserRepo, application.ProjectRepo)
			executor := assistant.NewExecutor(store, hub, logger)

			handler := server.New(server.Config{
				Logger:    logger,
				Hub:       hub,
				Registry:  registry,
				Executor:  executor,
				Teams:     application.Teams,
				Users:     application.Users,
				Projects:  application.Projects,
				Tasks:     application.Tasks,
				Messages:  application.Messages,
				Tokens:    application.TokenRepo,
				SSEBuffer: cfg.SSEBuffer,
			})

			httpServer := &http.Server{
				Addr:              cfg.Addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			group, ctx := errgroup.WithContext(ctx)
			group.Go(func() error {
				logger.Info("server listening", "addr", cfg.Addr, "db", cfg.DBPath)
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			group.Go(func() error {
				<-ctx.Done()
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return httpServer.Shutdown(shutdownCtx)
			})

			return group.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HUDDLE_ADDR)")
	return cmd
}
