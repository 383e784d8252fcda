package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/huddlehq/huddle/internal/domain"
)

var emailCounter atomic.Int64

// Team fixtures

func NewTestTeam(name string) *domain.Team {
	return &domain.Team{
		ID:        domain.NewID(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// User fixtures

type UserOption func(*domain.User)

func WithRole(r domain.Role) UserOption {
	return func(u *domain.User) {
		u.Role = r
	}
}

func WithEmail(email string) UserOption {
	return func(u *domain.User) {
		u.Email = email
	}
}

func NewTestUser(teamID, name string, opts ...UserOption) *domain.User {
	n := emailCounter.Add(1)
	u := &domain.User{
		ID:        domain.NewID(),
		Name:      name,
		Email:     fmt.Sprintf("%s%d@example.com", strings.ToLower(strings.ReplaceAll(name, " ", ".")), n),
		Role:      domain.RoleMember,
		TeamID:    teamID,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Project fixtures

func NewTestProject(teamID, name string) *domain.Project {
	return &domain.Project{
		ID:        domain.NewID(),
		TeamID:    teamID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// Task fixtures

type TaskOption func(*domain.Task)

func WithStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithAssignee(userID string) TaskOption {
	return func(t *domain.Task) {
		t.AssigneeID = &userID
	}
}

func WithDescription(desc string) TaskOption {
	return func(t *domain.Task) {
		t.Description = desc
	}
}

func NewTestTask(projectID, title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	task := &domain.Task{
		ID:        domain.NewID(),
		ProjectID: projectID,
		Title:     title,
		Status:    domain.TaskTodo,
		CreatedBy: "test",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(task)
	}
	return task
}

// Message fixtures

func NewTestMessage(teamID, authorID, content string) *domain.Message {
	return &domain.Message{
		ID:        domain.NewID(),
		TeamID:    teamID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}
