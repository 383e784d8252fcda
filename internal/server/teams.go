package server

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/huddlehq/huddle/internal/assistant"
	"github.com/huddlehq/huddle/internal/domain"
)

func registerTeams(api huma.API, cfg Config) {
	huma.Register(api, huma.Operation{
		OperationID: "get-team",
		Method:      http.MethodGet,
		Path:        "/team",
		Summary:     "Get the caller's team",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body teamDTO
	}, error) {
		user, herr := requireUser(ctx)
		if herr != nil {
			return nil, herr
		}
		team, err := cfg.Teams.GetByID(ctx, user.TeamID)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct{ Body teamDTO }{Body: teamDTO{
			ID:        team.ID,
			Name:      team.Name,
			CreatedAt: team.CreatedAt,
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-team-members",
		Method:      http.MethodGet,
		Path:        "/team/members",
		Summary:     "List the caller's team members",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body []userDTO
	}, error) {
		user, herr := requireUser(ctx)
		if herr != nil {
			return nil, herr
		}
		members, err := cfg.Users.ListByTeam(ctx, user.TeamID)
		if err != nil {
			return nil, handleError(err)
		}
		out := make([]userDTO, 0, len(members))
		for _, m := range members {
			out = append(out, toUserDTO(m))
		}
		return &struct{ Body []userDTO }{Body: out}, nil
	})

	type messagePostInput struct {
		Body struct {
			Content string `json:"content"`
		}
	}
	huma.Register(api, huma.Operation{
		OperationID: "post-message",
		Method:      http.MethodPost,
		Path:        "/team/messages",
		Summary:     "Post a message to the team channel",
	}, func(ctx context.Context, input *messagePostInput) (*struct {
		Body messageDTO
	}, error) {
		user, herr := requireUser(ctx)
		if herr != nil {
			return nil, herr
		}
		message := &domain.Message{
			TeamID:   user.TeamID,
			AuthorID: user.ID,
			Content:  input.Body.Content,
		}
		if err := cfg.Messages.Post(ctx, message); err != nil {
			return nil, newAPIError(http.StatusBadRequest, err.Error())
		}
		if cfg.Hub != nil {
			cfg.Hub.Publish(assistant.TeamTopic(user.TeamID), EventMessagePosted, toMessageDTO(message))
		}
		return &struct{ Body messageDTO }{Body: toMessageDTO(message)}, nil
	})

	type messageListInput struct {
		Limit int `query:"limit" default:"50"`
	}
	huma.Register(api, huma.Operation{
		OperationID: "list-messages",
		Method:      http.MethodGet,
		Path:        "/team/messages",
		Summary:     "List recent team messages, oldest first",
	}, func(ctx context.Context, input *messageListInput) (*struct {
		Body []messageDTO
	}, error) {
		user, herr := requireUser(ctx)
		if herr != nil {
			return nil, herr
		}
		messages, err := cfg.Messages.ListByTeam(ctx, user.TeamID, input.Limit)
		if err != nil {
			return nil, handleError(err)
		}
		out := make([]messageDTO, 0, len(messages))
		for _, m := range messages {
			out = append(out, toMessageDTO(m))
		}
		return &struct{ Body []messageDTO }{Body: out}, nil
	})
}
