package service

import (
	"context"
	"fmt"
	"time"

	"github.com/huddlehq/huddle/internal/domain"
	"github.com/huddlehq/huddle/internal/repository"
)

type messageService struct {
	messages repository.MessageRepo
}

func NewMessageService(messages repository.MessageRepo) MessageService {
	return &messageService{messages: messages}
}

func (s *messageService) Post(ctx context.Context, m *domain.Message) error {
	if m.Content == "" {
		return fmt.Errorf("message content is required")
	}
	if m.TeamID == "" {
		return fmt.Errorf("message must belong to a team")
	}
	if m.AuthorID == "" {
		return fmt.Errorf("message author is required")
	}
	if m.ID == "" {
		m.ID = domain.NewID()
	}
	m.CreatedAt = time.Now().UTC()
	return s.messages.Create(ctx, m)
}

func (s *messageService) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	return s.messages.GetByID(ctx, id)
}

func (s *messageService) ListByTeam(ctx context.Context, teamID string, limit int) ([]*domain.Message, error) {
	return s.messages.ListByTeam(ctx, teamID, limit)
}

func (s *messageService) Delete(ctx context.Context, id string) error {
	return s.messages.Delete(ctx, id)
}
