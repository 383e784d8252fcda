package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huddlehq/huddle/internal/domain"
	"github.com/huddlehq/huddle/internal/repository"
	"github.com/huddlehq/huddle/internal/testutil"
)

func TestUserRepoRoundtrip(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)

	team := testutil.NewTestTeam("acme")
	require.NoError(t, repository.NewSQLiteTeamRepo(database).Create(ctx, team))
	repo := repository.NewSQLiteUserRepo(database)

	user := testutil.NewTestUser(team.ID, "Sarah Connor", testutil.WithRole(domain.RoleManager))
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sarah Connor", got.Name)
	assert.Equal(t, domain.RoleManager, got.Role)
	assert.Equal(t, team.ID, got.TeamID)

	byEmail, err := repo.GetByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestUserRepoListByTeamAndRole(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)

	teamRepo := repository.NewSQLiteTeamRepo(database)
	repo := repository.NewSQLiteUserRepo(database)

	team := testutil.NewTestTeam("acme")
	other := testutil.NewTestTeam("globex")
	require.NoError(t, teamRepo.Create(ctx, team))
	require.NoError(t, teamRepo.Create(ctx, other))

	require.NoError(t, repo.Create(ctx, testutil.NewTestUser(team.ID, "Member One")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestUser(team.ID, "Member Two")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestUser(team.ID, "The Manager", testutil.WithRole(domain.RoleManager))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestUser(other.ID, "Elsewhere")))

	members, err := repo.ListByTeamAndRole(ctx, team.ID, domain.RoleMember)
	require.NoError(t, err)
	require.Len(t, members, 2)
	for _, m := range members {
		assert.Equal(t, domain.RoleMember, m.Role)
		assert.Equal(t, team.ID, m.TeamID)
	}

	all, err := repo.ListByTeam(ctx, team.ID)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
