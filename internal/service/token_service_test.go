package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huddlehq/huddle/internal/auth"
	"github.com/huddlehq/huddle/internal/repository"
	"github.com/huddlehq/huddle/internal/service"
	"github.com/huddlehq/huddle/internal/testutil"
)

func TestTokenServiceIssueAndRevoke(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)

	team := testutil.NewTestTeam("acme")
	require.NoError(t, repository.NewSQLiteTeamRepo(database).Create(ctx, team))
	userRepo := repository.NewSQLiteUserRepo(database)
	user := testutil.NewTestUser(team.ID, "Sarah Connor")
	require.NoError(t, userRepo.Create(ctx, user))

	tokenRepo := repository.NewSQLiteTokenRepo(database)
	svc := service.NewTokenService(tokenRepo, userRepo)

	plaintext, err := svc.Issue(ctx, user.ID, "cli")
	require.NoError(t, err)
	assert.True(t, auth.ValidTokenFormat(plaintext))

	found, err := tokenRepo.FindUser(ctx, auth.HashToken(plaintext))
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	t.Run("unknown user cannot get a token", func(t *testing.T) {
		_, err := svc.Issue(ctx, "missing", "cli")
		assert.True(t, errors.Is(err, repository.ErrNotFound))
	})

	t.Run("revoke invalidates", func(t *testing.T) {
		require.NoError(t, svc.RevokeByUser(ctx, user.ID))
		_, err := tokenRepo.FindUser(ctx, auth.HashToken(plaintext))
		assert.True(t, errors.Is(err, repository.ErrNotFound))
	})
}
