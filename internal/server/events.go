package server

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"

	"github.com/huddlehq/huddle/internal/assistant"
	"github.com/huddlehq/huddle/internal/domain"
	"github.com/huddlehq/huddle/internal/notify"
)

// EventMessagePosted is published on the team topic when a chat message is
// posted. Task event names live with the assistant, which owns those
// mutations.
const EventMessagePosted = "message-posted"

type taskDeletedEvent struct {
	TaskID    string `json:"taskId"`
	ProjectID string `json:"projectId"`
}

func registerEvents(api huma.API, cfg Config) {
	sse.Register(api, huma.Operation{
		OperationID: "team-events",
		Method:      http.MethodGet,
		Path:        "/team/events",
		Summary:     "Stream team events over SSE",
	}, map[string]any{
		assistant.EventTaskUpdated: taskDTO{},
		assistant.EventTaskDeleted: taskDeletedEvent{},
		EventMessagePosted:         messageDTO{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		identity := requireIdentity(ctx)
		if identity == nil {
			return
		}

		events, cancel := cfg.Hub.Subscribe(assistant.TeamTopic(identity.TeamID), cfg.SSEBuffer)
		defer cancel()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if payload := eventPayload(ev); payload != nil {
					if err := send.Data(payload); err != nil {
						return
					}
				}
			}
		}
	})
}

// eventPayload normalizes hub payloads to their wire shapes. Publishers
// inside the server already send DTOs; the assistant publishes domain
// values.
func eventPayload(ev notify.Event) any {
	switch payload := ev.Payload.(type) {
	case *domain.Task:
		return toTaskDTO(payload)
	case taskDTO, messageDTO, taskDeletedEvent:
		return payload
	case map[string]string:
		if ev.Name == assistant.EventTaskDeleted {
			return taskDeletedEvent{
				TaskID:    payload["taskId"],
				ProjectID: payload["projectId"],
			}
		}
	}
	return nil
}

func requireIdentity(ctx context.Context) *domain.User {
	user, herr := requireUser(ctx)
	if herr != nil {
		return nil
	}
	return user
}
