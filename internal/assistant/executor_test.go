package assistant_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huddlehq/huddle/internal/assistant"
	"github.com/huddlehq/huddle/internal/domain"
	"github.com/huddlehq/huddle/internal/repository"
	"github.com/huddlehq/huddle/internal/service"
	"github.com/huddlehq/huddle/internal/testutil"
)

type recordedEvent struct {
	Topic   string
	Name    string
	Payload any
}

type fakeNotifier struct {
	events []recordedEvent
}

func (f *fakeNotifier) Publish(topic, event string, payload any) {
	f.events = append(f.events, recordedEvent{Topic: topic, Name: event, Payload: payload})
}

type execEnv struct {
	exec     *assistant.Executor
	notifier *fakeNotifier
	tasks    repository.TaskRepo

	team    *domain.Team
	project *domain.Project
	admin   *domain.User
	manager *domain.User
	member  *domain.User
	member2 *domain.User
}

func newExecEnv(t *testing.T) *execEnv {
	t.Helper()
	ctx := context.Background()
	database := testutil.NewTestDB(t)

	teamRepo := repository.NewSQLiteTeamRepo(database)
	userRepo := repository.NewSQLiteUserRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)

	team := testutil.NewTestTeam("acme")
	require.NoError(t, teamRepo.Create(ctx, team))

	admin := testutil.NewTestUser(team.ID, "Ada Admin", testutil.WithRole(domain.RoleAdmin))
	manager := testutil.NewTestUser(team.ID, "Grace Manager", testutil.WithRole(domain.RoleManager))
	member := testutil.NewTestUser(team.ID, "Sarah Connor")
	member2 := testutil.NewTestUser(team.ID, "Ken Thompson")
	for _, u := range []*domain.User{admin, manager, member, member2} {
		require.NoError(t, userRepo.Create(ctx, u))
	}

	project := testutil.NewTestProject(team.ID, "Website Revamp")
	require.NoError(t, projectRepo.Create(ctx, project))

	notifier := &fakeNotifier{}
	store := service.NewAssistantStore(taskRepo, userRepo, projectRepo)

	return &execEnv{
		exec:     assistant.NewExecutor(store, notifier, nil),
		notifier: notifier,
		tasks:    taskRepo,
		team:     team,
		project:  project,
		admin:    admin,
		manager:  manager,
		member:   member,
		member2:  member2,
	}
}

func (e *execEnv) addTask(t *testing.T, title string, opts ...testutil.TaskOption) *domain.Task {
	t.Helper()
	task := testutil.NewTestTask(e.project.ID, title, opts...)
	require.NoError(t, e.tasks.Create(context.Background(), task))
	return task
}

func (e *execEnv) run(user *domain.User, text string) (*assistant.Result, error) {
	return e.exec.Execute(context.Background(), assistant.Command{
		Text:      text,
		Issuer:    user,
		ProjectID: e.project.ID,
	})
}

func TestExecuteCreate(t *testing.T) {
	env := newExecEnv(t)

	result, err := env.run(env.manager, "create a task to fix the login bug")
	require.NoError(t, err)
	assert.Contains(t, result.Message, "created successfully")
	require.NotNil(t, result.Task)
	assert.Equal(t, "fix the login bug", result.Task.Title)
	assert.Equal(t, domain.TaskTodo, result.Task.Status)
	assert.Nil(t, result.Task.AssigneeID)
	assert.Equal(t, env.manager.ID, result.Task.CreatedBy)

	stored, err := env.tasks.GetByID(context.Background(), result.Task.ID)
	require.NoError(t, err)
	assert.Equal(t, "fix the login bug", stored.Title)

	require.Len(t, env.notifier.events, 1)
	assert.Equal(t, assistant.TeamTopic(env.team.ID), env.notifier.events[0].Topic)
	assert.Equal(t, assistant.EventTaskUpdated, env.notifier.events[0].Name)
}

func TestExecuteCreateWithAssigneeHint(t *testing.T) {
	env := newExecEnv(t)

	t.Run("manager hint is honored", func(t *testing.T) {
		result, err := env.run(env.manager, "create a task 'write docs' assigned to sarah")
		require.NoError(t, err)
		require.NotNil(t, result.Task.AssigneeID)
		assert.Equal(t, env.member.ID, *result.Task.AssigneeID)
	})

	t.Run("admin hint is ignored", func(t *testing.T) {
		result, err := env.run(env.admin, "create a task 'plan retro' assigned to sarah")
		require.NoError(t, err)
		assert.Nil(t, result.Task.AssigneeID)
	})
}

func TestExecuteCreateForbiddenForMember(t *testing.T) {
	env := newExecEnv(t)

	_, err := env.run(env.member, "create a task to sneak something in")
	require.Error(t, err)
	assert.True(t, errors.Is(err, assistant.ErrForbidden))

	tasks, err := env.tasks.ListByProject(context.Background(), env.project.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestExecuteMove(t *testing.T) {
	env := newExecEnv(t)
	env.addTask(t, "fix the login bug")

	result, err := env.run(env.manager, "move task 'login bug' to done")
	require.NoError(t, err)
	assert.Contains(t, result.Message, "moved to done")
	assert.Equal(t, domain.TaskDone, result.Task.Status)
}

func TestExecuteMoveWithoutStatusFailsBeforePersistence(t *testing.T) {
	env := newExecEnv(t)
	task := env.addTask(t, "fix the login bug")

	_, err := env.run(env.manager, "move task 'login bug'")
	require.Error(t, err)
	assert.True(t, errors.Is(err, assistant.ErrBadRequest))

	stored, err := env.tasks.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskTodo, stored.Status)
	assert.Empty(t, env.notifier.events)
}

func TestExecuteMemberUpdatesOwnTaskStatusOnly(t *testing.T) {
	env := newExecEnv(t)
	env.addTask(t, "write docs", testutil.WithAssignee(env.member.ID))

	result, err := env.run(env.member, "update task 'write docs' status to in progress")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskInProgress, result.Task.Status)

	// Non-status fields in a member's command are dropped; with nothing
	// else to change the command is rejected outright.
	_, err = env.run(env.member, "update task 'write docs' title: hijacked")
	require.Error(t, err)
	assert.True(t, errors.Is(err, assistant.ErrBadRequest))

	stored, err := env.tasks.GetByID(context.Background(), result.Task.ID)
	require.NoError(t, err)
	assert.Equal(t, "write docs", stored.Title)
}

func TestExecuteMemberCannotTouchOthersTasks(t *testing.T) {
	env := newExecEnv(t)
	env.addTask(t, "write docs", testutil.WithAssignee(env.member2.ID))

	_, err := env.run(env.member, "move task 'write docs' to done")
	require.Error(t, err)
	assert.True(t, errors.Is(err, assistant.ErrForbidden))
}

func TestExecuteAssign(t *testing.T) {
	env := newExecEnv(t)
	task := env.addTask(t, "fix the login bug")

	t.Run("manager assigns to a member", func(t *testing.T) {
		result, err := env.run(env.manager, "assign task 'login bug' to sarah")
		require.NoError(t, err)
		assert.Contains(t, result.Message, "assigned to Sarah Connor")
		require.NotNil(t, result.Task.AssigneeID)
		assert.Equal(t, env.member.ID, *result.Task.AssigneeID)
	})

	t.Run("member may not assign", func(t *testing.T) {
		_, err := env.run(env.member2, "assign task 'login bug' to ken")
		require.Error(t, err)
		assert.True(t, errors.Is(err, assistant.ErrForbidden))

		stored, err := env.tasks.GetByID(context.Background(), task.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.AssigneeID)
		assert.Equal(t, env.member.ID, *stored.AssigneeID)
	})

	t.Run("managers are not assignable", func(t *testing.T) {
		_, err := env.run(env.manager, "assign task 'login bug' to grace")
		require.Error(t, err)
		assert.True(t, errors.Is(err, assistant.ErrNotFound))
	})
}

func TestExecuteDelete(t *testing.T) {
	env := newExecEnv(t)
	task := env.addTask(t, "fix the login bug")

	t.Run("manager may not delete", func(t *testing.T) {
		_, err := env.run(env.manager, "delete task 'login bug'")
		require.Error(t, err)
		assert.True(t, errors.Is(err, assistant.ErrForbidden))

		_, err = env.tasks.GetByID(context.Background(), task.ID)
		require.NoError(t, err)
	})

	t.Run("admin deletes and a deletion event fires", func(t *testing.T) {
		result, err := env.run(env.admin, "delete task 'login bug'")
		require.NoError(t, err)
		assert.Contains(t, result.Message, "deleted successfully")
		assert.Nil(t, result.Task)

		_, err = env.tasks.GetByID(context.Background(), task.ID)
		assert.True(t, errors.Is(err, repository.ErrNotFound))

		last := env.notifier.events[len(env.notifier.events)-1]
		assert.Equal(t, assistant.EventTaskDeleted, last.Name)
		payload, ok := last.Payload.(map[string]string)
		require.True(t, ok)
		assert.Equal(t, task.ID, payload["taskId"])
		assert.Equal(t, env.project.ID, payload["projectId"])
	})
}

func TestExecuteList(t *testing.T) {
	env := newExecEnv(t)
	env.addTask(t, "unassigned chore")
	env.addTask(t, "mine", testutil.WithAssignee(env.member.ID))
	env.addTask(t, "someone elses", testutil.WithAssignee(env.member2.ID))

	t.Run("manager sees everything", func(t *testing.T) {
		result, err := env.run(env.manager, "list tasks")
		require.NoError(t, err)
		assert.Len(t, result.Tasks, 3)
		assert.Contains(t, result.Message, "Found 3 task(s)")
	})

	t.Run("member sees own and unassigned", func(t *testing.T) {
		result, err := env.run(env.member, "list tasks")
		require.NoError(t, err)
		require.Len(t, result.Tasks, 2)
		for _, task := range result.Tasks {
			if task.AssigneeID != nil {
				assert.Equal(t, env.member.ID, *task.AssigneeID)
			}
		}
	})
}

func TestExecuteHelpAndUnknown(t *testing.T) {
	env := newExecEnv(t)

	result, err := env.run(env.member, "help")
	require.NoError(t, err)
	assert.Equal(t, assistant.HelpText, result.Message)
	assert.Nil(t, result.Task)
	assert.Nil(t, result.Tasks)

	result, err = env.run(env.member, "make the frontend cheerful")
	require.NoError(t, err)
	assert.Equal(t, assistant.UnknownText, result.Message)
}

func TestExecuteScopeErrors(t *testing.T) {
	env := newExecEnv(t)

	t.Run("missing project id", func(t *testing.T) {
		_, err := env.exec.Execute(context.Background(), assistant.Command{
			Text:   "list tasks",
			Issuer: env.manager,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, assistant.ErrBadRequest))
	})

	t.Run("unknown project id", func(t *testing.T) {
		_, err := env.exec.Execute(context.Background(), assistant.Command{
			Text:      "list tasks",
			Issuer:    env.manager,
			ProjectID: domain.NewID(),
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, assistant.ErrNotFound))
	})

	t.Run("unresolvable task reference", func(t *testing.T) {
		_, err := env.run(env.manager, "move task 'does not exist' to done")
		require.Error(t, err)
		assert.True(t, errors.Is(err, assistant.ErrNotFound))
	})

	t.Run("reference missing entirely", func(t *testing.T) {
		_, err := env.run(env.manager, "move the task to done")
		require.Error(t, err)
		assert.True(t, errors.Is(err, assistant.ErrBadRequest))
	})
}

func TestExecuteNilNotifierIsNoOp(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)

	teamRepo := repository.NewSQLiteTeamRepo(database)
	userRepo := repository.NewSQLiteUserRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)

	team := testutil.NewTestTeam("acme")
	require.NoError(t, teamRepo.Create(ctx, team))
	manager := testutil.NewTestUser(team.ID, "Grace Manager", testutil.WithRole(domain.RoleManager))
	require.NoError(t, userRepo.Create(ctx, manager))
	project := testutil.NewTestProject(team.ID, "Website Revamp")
	require.NoError(t, projectRepo.Create(ctx, project))

	exec := assistant.NewExecutor(service.NewAssistantStore(taskRepo, userRepo, projectRepo), nil, nil)
	result, err := exec.Execute(ctx, assistant.Command{
		Text:      "create a task to fix the login bug",
		Issuer:    manager,
		ProjectID: project.ID,
	})
	require.NoError(t, err)
	assert.Contains(t, result.Message, "created successfully")
}
