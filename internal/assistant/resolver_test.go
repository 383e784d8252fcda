package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/huddlehq/huddle/internal/domain"
)

func task(id, title string) *domain.Task {
	return &domain.Task{ID: id, Title: title}
}

func TestResolveTaskByID(t *testing.T) {
	candidates := []*domain.Task{
		task("a1", "fix login bug"),
		task("b2", "write docs"),
	}

	assert.Equal(t, "b2", ResolveTask(TaskRef{ID: "b2"}, candidates).ID)
	assert.Nil(t, ResolveTask(TaskRef{ID: "zz"}, candidates))
}

func TestResolveTaskByTitle(t *testing.T) {
	candidates := []*domain.Task{
		task("a1", "Fix Login Bug"),
		task("b2", "login page polish"),
	}

	t.Run("fragment contained in title", func(t *testing.T) {
		got := ResolveTask(TaskRef{Title: "login bug"}, candidates)
		assert.Equal(t, "a1", got.ID)
	})

	t.Run("title contained in fragment", func(t *testing.T) {
		got := ResolveTask(TaskRef{Title: "please fix login bug today"}, candidates)
		assert.Equal(t, "a1", got.ID)
	})

	t.Run("case insensitive", func(t *testing.T) {
		got := ResolveTask(TaskRef{Title: "FIX LOGIN"}, candidates)
		assert.Equal(t, "a1", got.ID)
	})

	t.Run("first match wins on ambiguity", func(t *testing.T) {
		got := ResolveTask(TaskRef{Title: "login"}, candidates)
		assert.Equal(t, "a1", got.ID)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Nil(t, ResolveTask(TaskRef{Title: "deploy"}, candidates))
	})

	t.Run("empty fragment", func(t *testing.T) {
		assert.Nil(t, ResolveTask(TaskRef{}, candidates))
	})

	t.Run("empty candidate set", func(t *testing.T) {
		assert.Nil(t, ResolveTask(TaskRef{Title: "login"}, nil))
	})
}

func TestResolveUser(t *testing.T) {
	candidates := []*domain.User{
		{ID: "u1", Name: "Sarah Connor", Email: "sarah@example.com"},
		{ID: "u2", Name: "John Doe", Email: "jd@example.com"},
	}

	t.Run("by name fragment", func(t *testing.T) {
		assert.Equal(t, "u1", ResolveUser("sarah", candidates).ID)
	})

	t.Run("by email", func(t *testing.T) {
		assert.Equal(t, "u2", ResolveUser("jd@example.com", candidates).ID)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Nil(t, ResolveUser("kyle", candidates))
	})

	t.Run("empty fragment", func(t *testing.T) {
		assert.Nil(t, ResolveUser("  ", candidates))
	})
}
