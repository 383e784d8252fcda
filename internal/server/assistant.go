package server

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/huddlehq/huddle/internal/assistant"
)

func registerAssistant(api huma.API, cfg Config) {
	type assistantInput struct {
		Body struct {
			Command   string `json:"command" doc:"Natural-language command"`
			ProjectID string `json:"projectId,omitempty" doc:"Project the command is scoped to"`
		}
	}
	type assistantOutput struct {
		Body struct {
			Message string    `json:"message"`
			Task    *taskDTO  `json:"task,omitempty"`
			Tasks   []taskDTO `json:"tasks,omitempty"`
		}
	}

	huma.Register(api, huma.Operation{
		OperationID: "assistant-command",
		Method:      http.MethodPost,
		Path:        "/assistant",
		Summary:     "Run a natural-language command",
	}, func(ctx context.Context, input *assistantInput) (*assistantOutput, error) {
		user, herr := requireUser(ctx)
		if herr != nil {
			return nil, herr
		}
		if input.Body.Command == "" {
			return nil, newAPIError(http.StatusBadRequest, "command is required")
		}

		// A project in another team is indistinguishable from a missing one.
		if input.Body.ProjectID != "" {
			project, err := cfg.Projects.GetByID(ctx, input.Body.ProjectID)
			if err != nil {
				return nil, handleError(err)
			}
			if project.TeamID != user.TeamID {
				return nil, newAPIError(http.StatusNotFound, "project not found")
			}
		}

		result, err := cfg.Executor.Execute(ctx, assistant.Command{
			Text:      input.Body.Command,
			Issuer:    user,
			ProjectID: input.Body.ProjectID,
		})
		if err != nil {
			return nil, handleError(err)
		}

		out := &assistantOutput{}
		out.Body.Message = result.Message
		if result.Task != nil {
			dto := toTaskDTO(result.Task)
			out.Body.Task = &dto
		}
		if result.Tasks != nil {
			out.Body.Tasks = toTaskDTOs(result.Tasks)
		}
		return out, nil
	})
}
