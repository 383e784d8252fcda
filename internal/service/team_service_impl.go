package service

import (
	"context"
	"fmt"
	"time"

	"github.com/huddlehq/huddle/internal/domain"
	"github.com/huddlehq/huddle/internal/repository"
)

type teamService struct {
	teams repository.TeamRepo
}

func NewTeamService(teams repository.TeamRepo) TeamService {
	return &teamService{teams: teams}
}

func (s *teamService) Create(ctx context.Context, t *domain.Team) error {
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.ID == "" {
		t.ID = domain.NewID()
	}
	t.CreatedAt = time.Now().UTC()
	return s.teams.Create(ctx, t)
}

func (s *teamService) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	return s.teams.GetByID(ctx, id)
}

func (s *teamService) List(ctx context.Context) ([]*domain.Team, error) {
	return s.teams.List(ctx)
}
