package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/huddlehq/huddle/internal/assistant"
	"github.com/huddlehq/huddle/internal/auth"
	"github.com/huddlehq/huddle/internal/domain"
	"github.com/huddlehq/huddle/internal/notify"
	"github.com/huddlehq/huddle/internal/repository"
	"github.com/huddlehq/huddle/internal/service"
)

// Config wires the HTTP API to the rest of the application.
type Config struct {
	Logger    *slog.Logger
	Hub       *notify.Hub
	Registry  *prometheus.Registry
	Executor  *assistant.Executor
	Teams     service.TeamService
	Users     service.UserService
	Projects  service.ProjectService
	Tasks     service.TaskService
	Messages  service.MessageService
	Tokens    repository.TokenRepo
	SSEBuffer int
}

type apiErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// apiError is the uniform error envelope.
type apiError struct {
	status int
	Body   apiErrorBody `json:"error"`
}

func (e *apiError) GetStatus() int { return e.status }
func (e *apiError) Error() string  { return e.Body.Message }

// New returns the HTTP handler exposing the Huddle API. Health and metrics
// are unauthenticated; everything under /v1 requires a bearer token.
func New(cfg Config) http.Handler {
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		return newAPIError(status, msg)
	}

	router := chi.NewRouter()
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.Registry != nil {
		router.Method(http.MethodGet, "/metrics",
			promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))
	}

	apiRouter := chi.NewRouter()
	apiRouter.Use(auth.Middleware(cfg.Tokens))

	hcfg := huma.DefaultConfig("Huddle API", "0.1.0")
	api := humachi.New(apiRouter, hcfg)

	registerAssistant(api, cfg)
	registerTasks(api, cfg)
	registerProjects(api, cfg)
	registerTeams(api, cfg)
	registerEvents(api, cfg)

	router.Mount("/v1", apiRouter)
	return router
}

func newAPIError(status int, message string) huma.StatusError {
	code := strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	return &apiError{
		status: status,
		Body:   apiErrorBody{Code: code, Message: message},
	}
}

// handleError maps the error taxonomy onto HTTP statuses. Anything outside
// the taxonomy is an internal error and its detail stays out of the response.
func handleError(err error) huma.StatusError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assistant.ErrBadRequest):
		return newAPIError(http.StatusBadRequest, err.Error())
	case errors.Is(err, assistant.ErrForbidden):
		return newAPIError(http.StatusForbidden, err.Error())
	case errors.Is(err, assistant.ErrNotFound), errors.Is(err, repository.ErrNotFound):
		return newAPIError(http.StatusNotFound, err.Error())
	default:
		return newAPIError(http.StatusInternalServerError, "internal error")
	}
}

// requireUser pulls the authenticated user out of the request context. The
// auth middleware guarantees it for /v1 routes; the nil check guards tests
// that call handlers without it.
func requireUser(ctx context.Context) (*domain.User, huma.StatusError) {
	identity := auth.FromContext(ctx)
	if identity == nil || identity.User == nil {
		return nil, newAPIError(http.StatusUnauthorized, "authentication required")
	}
	return identity.User, nil
}
