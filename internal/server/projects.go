package server

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/huddlehq/huddle/internal/domain"
)

func registerProjects(api huma.API, cfg Config) {
	type projectCreateInput struct {
		Body struct {
			Name        string `json:"name"`
			Description string `json:"description,omitempty"`
		}
	}
	huma.Register(api, huma.Operation{
		OperationID: "create-project",
		Method:      http.MethodPost,
		Path:        "/projects",
		Summary:     "Create project in the caller's team",
	}, func(ctx context.Context, input *projectCreateInput) (*struct {
		Body projectDTO
	}, error) {
		user, herr := requireUser(ctx)
		if herr != nil {
			return nil, herr
		}
		if user.Role == domain.RoleMember {
			return nil, newAPIError(http.StatusForbidden, "members cannot create projects")
		}

		project := &domain.Project{
			TeamID:      user.TeamID,
			Name:        input.Body.Name,
			Description: input.Body.Description,
		}
		if err := cfg.Projects.Create(ctx, project); err != nil {
			return nil, newAPIError(http.StatusBadRequest, err.Error())
		}
		return &struct{ Body projectDTO }{Body: toProjectDTO(project)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-projects",
		Method:      http.MethodGet,
		Path:        "/projects",
		Summary:     "List the caller's team projects",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body []projectDTO
	}, error) {
		user, herr := requireUser(ctx)
		if herr != nil {
			return nil, herr
		}
		projects, err := cfg.Projects.ListByTeam(ctx, user.TeamID)
		if err != nil {
			return nil, handleError(err)
		}
		out := make([]projectDTO, 0, len(projects))
		for _, p := range projects {
			out = append(out, toProjectDTO(p))
		}
		return &struct{ Body []projectDTO }{Body: out}, nil
	})

	type projectIDInput struct {
		ID string `path:"id"`
	}
	huma.Register(api, huma.Operation{
		OperationID: "get-project",
		Method:      http.MethodGet,
		Path:        "/projects/{id}",
		Summary:     "Get project",
	}, func(ctx context.Context, input *projectIDInput) (*struct {
		Body projectDTO
	}, error) {
		user, herr := requireUser(ctx)
		if herr != nil {
			return nil, herr
		}
		project, err := cfg.Projects.GetByID(ctx, input.ID)
		if err != nil {
			return nil, handleError(err)
		}
		if project.TeamID != user.TeamID {
			return nil, newAPIError(http.StatusNotFound, "project not found")
		}
		return &struct{ Body projectDTO }{Body: toProjectDTO(project)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-project",
		Method:      http.MethodDelete,
		Path:        "/projects/{id}",
		Summary:     "Delete project",
	}, func(ctx context.Context, input *projectIDInput) (*struct{}, error) {
		user, herr := requireUser(ctx)
		if herr != nil {
			return nil, herr
		}
		if user.Role != domain.RoleAdmin {
			return nil, newAPIError(http.StatusForbidden, "only admins can delete projects")
		}
		project, err := cfg.Projects.GetByID(ctx, input.ID)
		if err != nil {
			return nil, handleError(err)
		}
		if project.TeamID != user.TeamID {
			return nil, newAPIError(http.StatusNotFound, "project not found")
		}
		if err := cfg.Projects.Delete(ctx, project.ID); err != nil {
			return nil, handleError(err)
		}
		return &struct{}{}, nil
	})
}
