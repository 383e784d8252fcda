package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huddlehq/huddle/internal/assistant"
	"github.com/huddlehq/huddle/internal/domain"
	"github.com/huddlehq/huddle/internal/notify"
	"github.com/huddlehq/huddle/internal/repository"
	"github.com/huddlehq/huddle/internal/server"
	"github.com/huddlehq/huddle/internal/service"
	"github.com/huddlehq/huddle/internal/testutil"
)

type testServer struct {
	handler http.Handler
	hub     *notify.Hub

	team    *domain.Team
	project *domain.Project
	tokens  map[string]string // user ID -> bearer token
	admin   *domain.User
	manager *domain.User
	member  *domain.User
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	database := testutil.NewTestDB(t)

	teamRepo := repository.NewSQLiteTeamRepo(database)
	userRepo := repository.NewSQLiteUserRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	messageRepo := repository.NewSQLiteMessageRepo(database)
	tokenRepo := repository.NewSQLiteTokenRepo(database)

	team := testutil.NewTestTeam("acme")
	require.NoError(t, teamRepo.Create(ctx, team))
	admin := testutil.NewTestUser(team.ID, "Ada Admin", testutil.WithRole(domain.RoleAdmin))
	manager := testutil.NewTestUser(team.ID, "Grace Manager", testutil.WithRole(domain.RoleManager))
	member := testutil.NewTestUser(team.ID, "Sarah Connor")
	for _, u := range []*domain.User{admin, manager, member} {
		require.NoError(t, userRepo.Create(ctx, u))
	}
	project := testutil.NewTestProject(team.ID, "Website Revamp")
	require.NoError(t, projectRepo.Create(ctx, project))

	tokenSvc := service.NewTokenService(tokenRepo, userRepo)
	tokens := make(map[string]string)
	for _, u := range []*domain.User{admin, manager, member} {
		token, err := tokenSvc.Issue(ctx, u.ID, "test")
		require.NoError(t, err)
		tokens[u.ID] = token
	}

	registry := prometheus.NewRegistry()
	hub := notify.NewHub(registry, nil)
	t.Cleanup(hub.Close)

	store := service.NewAssistantStore(taskRepo, userRepo, projectRepo)
	handler := server.New(server.Config{
		Hub:       hub,
		Registry:  registry,
		Executor:  assistant.NewExecutor(store, hub, nil),
		Teams:     service.NewTeamService(teamRepo),
		Users:     service.NewUserService(userRepo),
		Projects:  service.NewProjectService(projectRepo),
		Tasks:     service.NewTaskService(taskRepo),
		Messages:  service.NewMessageService(messageRepo),
		Tokens:    tokenRepo,
		SSEBuffer: 8,
	})

	return &testServer{
		handler: handler,
		hub:     hub,
		team:    team,
		project: project,
		tokens:  tokens,
		admin:   admin,
		manager: manager,
		member:  member,
	}
}

func (s *testServer) do(t *testing.T, user *domain.User, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != nil {
		req.Header.Set("Authorization", "Bearer "+s.tokens[user.ID])
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthIsUnauthenticated(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, nil, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.hub.Publish("team:x", "task-updated", nil)

	rec := s.do(t, nil, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "notify_events_published_total")
}

func TestAPIRequiresToken(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, nil, http.MethodGet, "/v1/projects", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized")
}

func TestAssistantEndpoint(t *testing.T) {
	s := newTestServer(t)

	t.Run("create via natural language", func(t *testing.T) {
		rec := s.do(t, s.manager, http.MethodPost, "/v1/assistant", map[string]string{
			"command":   "create a task to fix the login bug",
			"projectId": s.project.ID,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var out struct {
			Message string `json:"message"`
			Task    *struct {
				Title  string `json:"title"`
				Status string `json:"status"`
			} `json:"task"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Contains(t, out.Message, "created successfully")
		require.NotNil(t, out.Task)
		assert.Equal(t, "fix the login bug", out.Task.Title)
		assert.Equal(t, "todo", out.Task.Status)
	})

	t.Run("forbidden command maps to 403", func(t *testing.T) {
		rec := s.do(t, s.member, http.MethodPost, "/v1/assistant", map[string]string{
			"command":   "delete task 'fix the login bug'",
			"projectId": s.project.ID,
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "not allowed")
	})

	t.Run("unknown command is a normal response", func(t *testing.T) {
		rec := s.do(t, s.member, http.MethodPost, "/v1/assistant", map[string]string{
			"command":   "paint the bikeshed",
			"projectId": s.project.ID,
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "didn't understand")
	})

	t.Run("missing project maps to 400", func(t *testing.T) {
		rec := s.do(t, s.manager, http.MethodPost, "/v1/assistant", map[string]string{
			"command": "list tasks",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("error envelope shape", func(t *testing.T) {
		rec := s.do(t, s.member, http.MethodPost, "/v1/assistant", map[string]string{
			"command":   "delete task 'whatever'",
			"projectId": s.project.ID,
		})
		var envelope struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.Equal(t, "forbidden", envelope.Error.Code)
		assert.NotEmpty(t, envelope.Error.Message)
	})
}

func TestTaskEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, s.manager, http.MethodPost,
		fmt.Sprintf("/v1/projects/%s/tasks", s.project.ID),
		map[string]string{"title": "write docs"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "todo", created.Status)
	assert.Len(t, created.ID, 32)

	t.Run("member cannot create", func(t *testing.T) {
		rec := s.do(t, s.member, http.MethodPost,
			fmt.Sprintf("/v1/projects/%s/tasks", s.project.ID),
			map[string]string{"title": "nope"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("list", func(t *testing.T) {
		rec := s.do(t, s.member, http.MethodGet,
			fmt.Sprintf("/v1/projects/%s/tasks", s.project.ID), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var tasks []json.RawMessage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
		assert.Len(t, tasks, 1)
	})

	t.Run("get and delete", func(t *testing.T) {
		rec := s.do(t, s.member, http.MethodGet, "/v1/tasks/"+created.ID, nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = s.do(t, s.manager, http.MethodDelete, "/v1/tasks/"+created.ID, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = s.do(t, s.admin, http.MethodDelete, "/v1/tasks/"+created.ID, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = s.do(t, s.member, http.MethodGet, "/v1/tasks/"+created.ID, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestTeamEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, s.member, http.MethodGet, "/v1/team/members", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var members []struct {
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &members))
	assert.Len(t, members, 3)

	rec = s.do(t, s.member, http.MethodPost, "/v1/team/messages",
		map[string]string{"content": "standup in 5"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, s.manager, http.MethodGet, "/v1/team/messages", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "standup in 5")
}
