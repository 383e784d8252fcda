package service

import (
	"context"
	"errors"

	"github.com/huddlehq/huddle/internal/assistant"
	"github.com/huddlehq/huddle/internal/domain"
	"github.com/huddlehq/huddle/internal/repository"
)

// assistantGateway adapts the repositories to the assistant's Store
// contract: absent rows surface as (nil, nil) rather than errors, so the
// executor can distinguish "missing" from "broken".
type assistantGateway struct {
	tasks    repository.TaskRepo
	users    repository.UserRepo
	projects repository.ProjectRepo
}

func NewAssistantStore(tasks repository.TaskRepo, users repository.UserRepo, projects repository.ProjectRepo) assistant.Store {
	return &assistantGateway{tasks: tasks, users: users, projects: projects}
}

func (g *assistantGateway) FindTasksByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return g.tasks.ListByProject(ctx, projectID)
}

func (g *assistantGateway) FindTaskByID(ctx context.Context, id string) (*domain.Task, error) {
	task, err := g.tasks.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return task, err
}

func (g *assistantGateway) CreateTask(ctx context.Context, t *domain.Task) error {
	return g.tasks.Create(ctx, t)
}

func (g *assistantGateway) SaveTask(ctx context.Context, t *domain.Task) error {
	return g.tasks.Update(ctx, t)
}

func (g *assistantGateway) DeleteTask(ctx context.Context, id string) error {
	return g.tasks.Delete(ctx, id)
}

func (g *assistantGateway) FindUsersByTeamAndRole(ctx context.Context, teamID string, role domain.Role) ([]*domain.User, error) {
	return g.users.ListByTeamAndRole(ctx, teamID, role)
}

func (g *assistantGateway) FindProjectByID(ctx context.Context, id string) (*domain.Project, error) {
	project, err := g.projects.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return project, err
}
