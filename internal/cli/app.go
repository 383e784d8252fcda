package cli

import (
	"database/sql"
	"fmt"

	"github.com/huddlehq/huddle/internal/config"
	"github.com/huddlehq/huddle/internal/db"
	"github.com/huddlehq/huddle/internal/repository"
	"github.com/huddlehq/huddle/internal/service"
)

// app bundles the wired services the commands operate on.
type app struct {
	DB       *sql.DB
	Teams    service.TeamService
	Users    service.UserService
	Projects service.ProjectService
	Tasks    service.TaskService
	Messages service.MessageService
	Tokens   service.TokenService

	TeamRepo    repository.TeamRepo
	UserRepo    repository.UserRepo
	ProjectRepo repository.ProjectRepo
	TaskRepo    repository.TaskRepo
	MessageRepo repository.MessageRepo
	TokenRepo   repository.TokenRepo
}

func openApp(cfg config.Config) (*app, error) {
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	teamRepo := repository.NewSQLiteTeamRepo(database)
	userRepo := repository.NewSQLiteUserRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	messageRepo := repository.NewSQLiteMessageRepo(database)
	tokenRepo := repository.NewSQLiteTokenRepo(database)

	return &app{
		DB:       database,
		Teams:    service.NewTeamService(teamRepo),
		Users:    service.NewUserService(userRepo),
		Projects: service.NewProjectService(projectRepo),
		Tasks:    service.NewTaskService(taskRepo),
		Messages: service.NewMessageService(messageRepo),
		Tokens:   service.NewTokenService(tokenRepo, userRepo),

		TeamRepo:    teamRepo,
		UserRepo:    userRepo,
		ProjectRepo: projectRepo,
		TaskRepo:    taskRepo,
		MessageRepo: messageRepo,
		TokenRepo:   tokenRepo,
	}, nil
}

func (a *app) Close() error {
	return a.DB.Close()
}
