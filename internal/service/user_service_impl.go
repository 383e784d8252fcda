package service

import (
	"context"
	"fmt"
	"time"

	"github.com/huddlehq/huddle/internal/domain"
	"github.com/huddlehq/huddle/internal/repository"
)

type userService struct {
	users repository.UserRepo
}

func NewUserService(users repository.UserRepo) UserService {
	return &userService{users: users}
}

func (s *userService) Create(ctx context.Context, u *domain.User) error {
	if u.Name == "" {
		return fmt.Errorf("user name is required")
	}
	if u.TeamID == "" {
		return fmt.Errorf("user must belong to a team")
	}
	if u.Role == "" {
		u.Role = domain.RoleMember
	}
	if !domain.ValidRoles[u.Role] {
		return fmt.Errorf("invalid role %q", u.Role)
	}
	if u.ID == "" {
		u.ID = domain.NewID()
	}
	u.CreatedAt = time.Now().UTC()
	return s.users.Create(ctx, u)
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}

func (s *userService) ListByTeam(ctx context.Context, teamID string) ([]*domain.User, error) {
	return s.users.ListByTeam(ctx, teamID)
}

func (s *userService) Update(ctx context.Context, u *domain.User) error {
	if !domain.ValidRoles[u.Role] {
		return fmt.Errorf("invalid role %q", u.Role)
	}
	return s.users.Update(ctx, u)
}

func (s *userService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}
