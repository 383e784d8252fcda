package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/huddlehq/huddle/internal/config"
	"github.com/huddlehq/huddle/internal/domain"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with a demo team and print API tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			application, err := openApp(cfg)
			if err != nil {
				return err
			}
			defer application.Close()

			return seed(cmd.Context(), application, cmd.OutOrStdout())
		},
	}
}

func seed(ctx context.Context, application *app, out io.Writer) error {
	team := &domain.Team{Name: "Acme Engineering"}
	if err := application.Teams.Create(ctx, team); err != nil {
		return fmt.Errorf("creating team: %w", err)
	}

	users := []*domain.User{
		{Name: "Ada Lovelace", Email: "ada@acme.test", Role: domain.RoleAdmin, TeamID: team.ID},
		{Name: "Grace Hopper", Email: "grace@acme.test", Role: domain.RoleManager, TeamID: team.ID},
		{Name: "Ken Thompson", Email: "ken@acme.test", Role: domain.RoleMember, TeamID: team.ID},
		{Name: "Barbara Liskov", Email: "barbara@acme.test", Role: domain.RoleMember, TeamID: team.ID},
	}
	for _, u := range users {
		if err := application.Users.Create(ctx, u); err != nil {
			return fmt.Errorf("creating user %s: %w", u.Name, err)
		}
	}

	project := &domain.Project{
		TeamID:      team.ID,
		Name:        "Website Revamp",
		Description: "Refresh the marketing site",
	}
	if err := application.Projects.Create(ctx, project); err != nil {
		return fmt.Errorf("creating project: %w", err)
	}

	tasks := []*domain.Task{
		{ProjectID: project.ID, Title: "fix the login bug", Status: domain.TaskTodo, CreatedBy: users[1].ID},
		{ProjectID: project.ID, Title: "write onboarding docs", Status: domain.TaskInProgress, AssigneeID: &users[2].ID, CreatedBy: users[1].ID},
		{ProjectID: project.ID, Title: "ship the landing page", Status: domain.TaskDone, AssigneeID: &users[3].ID, CreatedBy: users[1].ID},
	}
	for _, t := range tasks {
		if err := application.Tasks.Create(ctx, t); err != nil {
			return fmt.Errorf("creating task %q: %w", t.Title, err)
		}
	}

	fmt.Fprintf(out, "Seeded team %q (%s) with project %q (%s)\n\n", team.Name, team.ID, project.Name, project.ID)
	for _, u := range users {
		token, err := application.Tokens.Issue(ctx, u.ID, "seed")
		if err != nil {
			return fmt.Errorf("issuing token for %s: %w", u.Name, err)
		}
		fmt.Fprintf(out, "%-16s %-8s %s\n", u.Name, u.Role, token)
	}
	return nil
}
