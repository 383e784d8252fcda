package service

import (
	"context"
	"fmt"

	"github.com/huddlehq/huddle/internal/auth"
	"github.com/huddlehq/huddle/internal/repository"
)

type tokenService struct {
	tokens repository.TokenRepo
	users  repository.UserRepo
}

func NewTokenService(tokens repository.TokenRepo, users repository.UserRepo) TokenService {
	return &tokenService{tokens: tokens, users: users}
}

// Issue mints a new API token for the user and returns the plaintext. The
// plaintext is shown exactly once; only the hash is persisted.
func (s *tokenService) Issue(ctx context.Context, userID, name string) (string, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return "", fmt.Errorf("looking up token owner: %w", err)
	}

	plaintext, hash, err := auth.GenerateToken()
	if err != nil {
		return "", err
	}
	if err := s.tokens.Create(ctx, hash, userID, name); err != nil {
		return "", fmt.Errorf("storing token: %w", err)
	}
	return plaintext, nil
}

func (s *tokenService) RevokeByUser(ctx context.Context, userID string) error {
	return s.tokens.DeleteByUser(ctx, userID)
}
