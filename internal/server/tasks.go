package server

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/huddlehq/huddle/internal/assistant"
	"github.com/huddlehq/huddle/internal/domain"
)

// scopedTask fetches a task and verifies it lives in the caller's team.
// Cross-team tasks are reported as missing, never as forbidden.
func scopedTask(ctx context.Context, cfg Config, taskID, teamID string) (*domain.Task, *domain.Project, huma.StatusError) {
	task, err := cfg.Tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, nil, handleError(err)
	}
	project, err := cfg.Projects.GetByID(ctx, task.ProjectID)
	if err != nil {
		return nil, nil, handleError(err)
	}
	if project.TeamID != teamID {
		return nil, nil, newAPIError(http.StatusNotFound, "task not found")
	}
	return task, project, nil
}

func registerTasks(api huma.API, cfg Config) {
	type taskCreateInput struct {
		ProjectID string `path:"project_id"`
		Body      struct {
			Title       string  `json:"title"`
			Description string  `json:"description,omitempty"`
			Status      string  `json:"status,omitempty"`
			AssigneeID  *string `json:"assignee_id,omitempty"`
		}
	}
	huma.Register(api, huma.Operation{
		OperationID: "create-task",
		Method:      http.MethodPost,
		Path:        "/projects/{project_id}/tasks",
		Summary:     "Create task",
	}, func(ctx context.Context, input *taskCreateInput) (*struct {
		Body taskDTO
	}, error) {
		user, herr := requireUser(ctx)
		if herr != nil {
			return nil, herr
		}
		if err := assistant.Authorize(user.Role, assistant.TagCreate); err != nil {
			return nil, handleError(err)
		}
		project, err := cfg.Projects.GetByID(ctx, input.ProjectID)
		if err != nil {
			return nil, handleError(err)
		}
		if project.TeamID != user.TeamID {
			return nil, newAPIError(http.StatusNotFound, "project not found")
		}

		task := &domain.Task{
			ProjectID:   project.ID,
			Title:       input.Body.Title,
			Description: input.Body.Description,
			Status:      domain.TaskStatus(input.Body.Status),
			AssigneeID:  input.Body.AssigneeID,
			CreatedBy:   user.ID,
		}
		if err := cfg.Tasks.Create(ctx, task); err != nil {
			return nil, newAPIError(http.StatusBadRequest, err.Error())
		}
		if cfg.Hub != nil {
			cfg.Hub.Publish(assistant.TeamTopic(project.TeamID), assistant.EventTaskUpdated, toTaskDTO(task))
		}
		return &struct{ Body taskDTO }{Body: toTaskDTO(task)}, nil
	})

	type taskListInput struct {
		ProjectID string `path:"project_id"`
	}
	huma.Register(api, huma.Operation{
		OperationID: "list-tasks",
		Method:      http.MethodGet,
		Path:        "/projects/{project_id}/tasks",
		Summary:     "List tasks in a project",
	}, func(ctx context.Context, input *taskListInput) (*struct {
		Body []taskDTO
	}, error) {
		user, herr := requireUser(ctx)
		if herr != nil {
			return nil, herr
		}
		project, err := cfg.Projects.GetByID(ctx, input.ProjectID)
		if err != nil {
			return nil, handleError(err)
		}
		if project.TeamID != user.TeamID {
			return nil, newAPIError(http.StatusNotFound, "project not found")
		}
		tasks, err := cfg.Tasks.ListByProject(ctx, project.ID)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct{ Body []taskDTO }{Body: toTaskDTOs(tasks)}, nil
	})

	type taskIDInput struct {
		ID string `path:"id"`
	}
	huma.Register(api, huma.Operation{
		OperationID: "get-task",
		Method:      http.MethodGet,
		Path:        "/tasks/{id}",
		Summary:     "Get task",
	}, func(ctx context.Context, input *taskIDInput) (*struct {
		Body taskDTO
	}, error) {
		user, herr := requireUser(ctx)
		if herr != nil {
			return nil, herr
		}
		task, _, herr := scopedTask(ctx, cfg, input.ID, user.TeamID)
		if herr != nil {
			return nil, herr
		}
		return &struct{ Body taskDTO }{Body: toTaskDTO(task)}, nil
	})

	type taskUpdateInput struct {
		ID   string `path:"id"`
		Body struct {
			Title       *string `json:"title,omitempty"`
			Description *string `json:"description,omitempty"`
			Status      *string `json:"status,omitempty"`
			AssigneeID  *string `json:"assignee_id,omitempty"`
		}
	}
	huma.Register(api, huma.Operation{
		OperationID: "update-task",
		Method:      http.MethodPatch,
		Path:        "/tasks/{id}",
		Summary:     "Update task",
	}, func(ctx context.Context, input *taskUpdateInput) (*struct {
		Body taskDTO
	}, error) {
		user, herr := requireUser(ctx)
		if herr != nil {
			return nil, herr
		}
		if err := assistant.Authorize(user.Role, assistant.TagUpdate); err != nil {
			return nil, handleError(err)
		}
		task, project, herr := scopedTask(ctx, cfg, input.ID, user.TeamID)
		if herr != nil {
			return nil, herr
		}
		// Members may update only their own tasks, and only the status.
		if err := assistant.CheckTaskOwnership(user, task); err != nil {
			return nil, handleError(err)
		}
		if user.Role == domain.RoleMember {
			input.Body.Title = nil
			input.Body.Description = nil
			input.Body.AssigneeID = nil
		}

		if input.Body.Title != nil {
			task.Title = *input.Body.Title
		}
		if input.Body.Description != nil {
			task.Description = *input.Body.Description
		}
		if input.Body.Status != nil {
			task.Status = domain.TaskStatus(*input.Body.Status)
		}
		if input.Body.AssigneeID != nil {
			if *input.Body.AssigneeID == "" {
				task.AssigneeID = nil
			} else {
				task.AssigneeID = input.Body.AssigneeID
			}
		}
		if err := cfg.Tasks.Update(ctx, task); err != nil {
			return nil, newAPIError(http.StatusBadRequest, err.Error())
		}
		if cfg.Hub != nil {
			cfg.Hub.Publish(assistant.TeamTopic(project.TeamID), assistant.EventTaskUpdated, toTaskDTO(task))
		}
		return &struct{ Body taskDTO }{Body: toTaskDTO(task)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-task",
		Method:      http.MethodDelete,
		Path:        "/tasks/{id}",
		Summary:     "Delete task",
	}, func(ctx context.Context, input *taskIDInput) (*struct{}, error) {
		user, herr := requireUser(ctx)
		if herr != nil {
			return nil, herr
		}
		if err := assistant.Authorize(user.Role, assistant.TagDelete); err != nil {
			return nil, handleError(err)
		}
		task, project, herr := scopedTask(ctx, cfg, input.ID, user.TeamID)
		if herr != nil {
			return nil, herr
		}
		if err := cfg.Tasks.Delete(ctx, task.ID); err != nil {
			return nil, handleError(err)
		}
		if cfg.Hub != nil {
			cfg.Hub.Publish(assistant.TeamTopic(project.TeamID), assistant.EventTaskDeleted, map[string]string{
				"taskId":    task.ID,
				"projectId": task.ProjectID,
			})
		}
		return &struct{}{}, nil
	})
}
