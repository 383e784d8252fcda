package repository

import (
	"context"
	"errors"

	"github.com/huddlehq/huddle/internal/domain"
)

// ErrNotFound is returned when a queried row does not exist. Repos wrap it
// with the entity name, so callers test with errors.Is.
var ErrNotFound = errors.New("not found")

type TeamRepo interface {
	Create(ctx context.Context, t *domain.Team) error
	GetByID(ctx context.Context, id string) (*domain.Team, error)
	List(ctx context.Context) ([]*domain.Team, error)
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByTeam(ctx context.Context, teamID string) ([]*domain.User, error)
	ListByTeamAndRole(ctx context.Context, teamID string, role domain.Role) ([]*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListByTeam(ctx context.Context, teamID string) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type MessageRepo interface {
	Create(ctx context.Context, m *domain.Message) error
	GetByID(ctx context.Context, id string) (*domain.Message, error)
	ListByTeam(ctx context.Context, teamID string, limit int) ([]*domain.Message, error)
	Delete(ctx context.Context, id string) error
}

type TokenRepo interface {
	Create(ctx context.Context, tokenHash []byte, userID, name string) error
	FindUser(ctx context.Context, tokenHash []byte) (*domain.User, error)
	DeleteByUser(ctx context.Context, userID string) error
}
