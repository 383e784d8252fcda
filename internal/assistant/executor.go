package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/huddlehq/huddle/internal/domain"
)

// Store is the persistence surface the executor needs. Lookups return
// (nil, nil) when the entity does not exist; the executor converts that to a
// NotFound failure. Any non-nil error is a connectivity-class failure and
// propagates unchanged.
type Store interface {
	FindTasksByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	FindTaskByID(ctx context.Context, id string) (*domain.Task, error)
	CreateTask(ctx context.Context, t *domain.Task) error
	SaveTask(ctx context.Context, t *domain.Task) error
	DeleteTask(ctx context.Context, id string) error
	FindUsersByTeamAndRole(ctx context.Context, teamID string, role domain.Role) ([]*domain.User, error)
	FindProjectByID(ctx context.Context, id string) (*domain.Project, error)
}

// Notifier pushes events to team subscribers. Publication is
// fire-and-forget: the executor never waits on or reacts to delivery.
type Notifier interface {
	Publish(topic, event string, payload any)
}

// Event names published on team topics.
const (
	EventTaskUpdated = "task-updated"
	EventTaskDeleted = "task-deleted"
)

// TeamTopic is the topic a team's subscribers listen on.
func TeamTopic(teamID string) string {
	return "team:" + teamID
}

// Command is one assistant invocation: the raw text, the authenticated
// issuer, and the project the caller is scoped to.
type Command struct {
	Text      string
	Issuer    *domain.User
	ProjectID string
}

// Result is the uniform response envelope. At most one of Task and Tasks is
// populated; delete, help, and unknown produce neither.
type Result struct {
	Message string
	Task    *domain.Task
	Tasks   []*domain.Task
}

// Executor runs parsed, authorized intents against the store. It performs
// exactly the persistence operations each intent requires and triggers a
// best-effort notification after successful mutations. A nil notifier is a
// legal silent no-op.
type Executor struct {
	store    Store
	notifier Notifier
	logger   *slog.Logger
}

func NewExecutor(store Store, notifier Notifier, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{store: store, notifier: notifier, logger: logger}
}

// Execute runs a single command through the parse -> authorize -> resolve ->
// mutate pipeline. All-or-nothing per command: every failure is raised
// before any mutation, so a rejected command never leaves partial state.
func (e *Executor) Execute(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.Issuer == nil {
		return nil, fmt.Errorf("%w: command has no issuer", ErrForbidden)
	}

	intent := Parse(cmd.Text)
	e.logger.Debug("command parsed", "intent", intent.Tag(), "user", cmd.Issuer.ID)

	if err := Authorize(cmd.Issuer.Role, intent.Tag()); err != nil {
		return nil, err
	}

	switch in := intent.(type) {
	case CreateIntent:
		return e.execCreate(ctx, cmd, in)
	case UpdateIntent:
		return e.execUpdate(ctx, cmd, in)
	case MoveIntent:
		return e.execMove(ctx, cmd, in)
	case AssignIntent:
		return e.execAssign(ctx, cmd, in)
	case DeleteIntent:
		return e.execDelete(ctx, cmd, in)
	case ListIntent:
		return e.execList(ctx, cmd)
	case HelpIntent:
		return &Result{Message: HelpText}, nil
	case UnknownIntent:
		return &Result{Message: in.Guidance}, nil
	case ErrorIntent:
		return nil, fmt.Errorf("%w: %s", ErrBadRequest, in.Message)
	default:
		return nil, fmt.Errorf("%w: unsupported intent %q", ErrBadRequest, intent.Tag())
	}
}

// scopedProject fetches the project the command is scoped to. Every task
// intent needs one: it bounds the candidate set and names the team topic.
func (e *Executor) scopedProject(ctx context.Context, cmd Command) (*domain.Project, error) {
	if cmd.ProjectID == "" {
		return nil, fmt.Errorf("%w: select a project before managing tasks", ErrBadRequest)
	}
	project, err := e.store.FindProjectByID(ctx, cmd.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("%w: project %q does not exist", ErrNotFound, cmd.ProjectID)
	}
	return project, nil
}

// resolveScopedTask reads the point-in-time candidate snapshot and resolves
// the reference against it. The snapshot is read once per command and never
// refreshed mid-request.
func (e *Executor) resolveScopedTask(ctx context.Context, projectID string, ref TaskRef) (*domain.Task, error) {
	if ref.IsZero() {
		return nil, fmt.Errorf("%w: tell me which task, by quoted title or ID", ErrBadRequest)
	}
	candidates, err := e.store.FindTasksByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	task := ResolveTask(ref, candidates)
	if task == nil {
		return nil, fmt.Errorf("%w: no task matching %q", ErrNotFound, refText(ref))
	}
	return task, nil
}

// resolveAssignee resolves a name fragment against the assignable pool:
// team members with the member role. Managers and admins are never
// assignable.
func (e *Executor) resolveAssignee(ctx context.Context, teamID, fragment string) (*domain.User, error) {
	pool, err := e.store.FindUsersByTeamAndRole(ctx, teamID, domain.RoleMember)
	if err != nil {
		return nil, err
	}
	user := ResolveUser(fragment, pool)
	if user == nil {
		return nil, fmt.Errorf("%w: no team member matching %q", ErrNotFound, fragment)
	}
	return user, nil
}

func (e *Executor) execCreate(ctx context.Context, cmd Command, in CreateIntent) (*Result, error) {
	project, err := e.scopedProject(ctx, cmd)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		ID:        domain.NewID(),
		ProjectID: project.ID,
		Title:     in.Title,
		Status:    domain.TaskTodo,
		CreatedBy: cmd.Issuer.ID,
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	// The assignment sub-field is honored for managers only; an admin's
	// hint is ignored rather than rejected.
	if in.AssigneeHint != nil && cmd.Issuer.Role == domain.RoleManager {
		assignee, err := e.resolveAssignee(ctx, project.TeamID, *in.AssigneeHint)
		if err != nil {
			return nil, err
		}
		task.AssigneeID = &assignee.ID
	}

	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	if err := e.store.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	e.notifyTask(project.TeamID, EventTaskUpdated, task)

	return &Result{
		Message: fmt.Sprintf("Task %q created successfully!", task.Title),
		Task:    task,
	}, nil
}

func (e *Executor) execUpdate(ctx context.Context, cmd Command, in UpdateIntent) (*Result, error) {
	project, err := e.scopedProject(ctx, cmd)
	if err != nil {
		return nil, err
	}
	task, err := e.resolveScopedTask(ctx, project.ID, in.Ref)
	if err != nil {
		return nil, err
	}
	if err := CheckTaskOwnership(cmd.Issuer, task); err != nil {
		return nil, err
	}

	// Members may mutate only the status field; any other parsed fields
	// are dropped, not rejected.
	changed := false
	if cmd.Issuer.Role != domain.RoleMember {
		if in.Title != nil {
			task.Title = *in.Title
			changed = true
		}
		if in.Description != nil {
			task.Description = *in.Description
			changed = true
		}
	}
	if in.Status != nil {
		task.Status = *in.Status
		changed = true
	}
	if !changed {
		return nil, fmt.Errorf("%w: nothing to update; give a new title, description, or status", ErrBadRequest)
	}

	task.UpdatedAt = time.Now().UTC()
	if err := e.store.SaveTask(ctx, task); err != nil {
		return nil, err
	}
	e.notifyTask(project.TeamID, EventTaskUpdated, task)

	return &Result{
		Message: fmt.Sprintf("Task %q updated successfully!", task.Title),
		Task:    task,
	}, nil
}

func (e *Executor) execMove(ctx context.Context, cmd Command, in MoveIntent) (*Result, error) {
	// Required-field check comes before any persistence call.
	if in.TargetStatus == nil {
		return nil, fmt.Errorf("%w: a target status is required (todo, in-progress, or done)", ErrBadRequest)
	}
	project, err := e.scopedProject(ctx, cmd)
	if err != nil {
		return nil, err
	}
	task, err := e.resolveScopedTask(ctx, project.ID, in.Ref)
	if err != nil {
		return nil, err
	}
	if err := CheckTaskOwnership(cmd.Issuer, task); err != nil {
		return nil, err
	}

	task.Status = *in.TargetStatus
	task.UpdatedAt = time.Now().UTC()
	if err := e.store.SaveTask(ctx, task); err != nil {
		return nil, err
	}
	e.notifyTask(project.TeamID, EventTaskUpdated, task)

	return &Result{
		Message: fmt.Sprintf("Task %q moved to %s successfully!", task.Title, task.Status),
		Task:    task,
	}, nil
}

func (e *Executor) execAssign(ctx context.Context, cmd Command, in AssignIntent) (*Result, error) {
	if in.AssigneeHint == nil {
		return nil, fmt.Errorf("%w: tell me who to assign the task to", ErrBadRequest)
	}
	project, err := e.scopedProject(ctx, cmd)
	if err != nil {
		return nil, err
	}
	task, err := e.resolveScopedTask(ctx, project.ID, in.Ref)
	if err != nil {
		return nil, err
	}
	// resolveAssignee draws from the member-role pool, which also
	// guarantees the target-must-be-member constraint.
	assignee, err := e.resolveAssignee(ctx, project.TeamID, *in.AssigneeHint)
	if err != nil {
		return nil, err
	}

	task.AssigneeID = &assignee.ID
	task.UpdatedAt = time.Now().UTC()
	if err := e.store.SaveTask(ctx, task); err != nil {
		return nil, err
	}
	e.notifyTask(project.TeamID, EventTaskUpdated, task)

	return &Result{
		Message: fmt.Sprintf("Task %q assigned to %s successfully!", task.Title, assignee.Name),
		Task:    task,
	}, nil
}

func (e *Executor) execDelete(ctx context.Context, cmd Command, in DeleteIntent) (*Result, error) {
	project, err := e.scopedProject(ctx, cmd)
	if err != nil {
		return nil, err
	}
	task, err := e.resolveScopedTask(ctx, project.ID, in.Ref)
	if err != nil {
		return nil, err
	}

	if err := e.store.DeleteTask(ctx, task.ID); err != nil {
		return nil, err
	}
	if e.notifier != nil {
		e.notifier.Publish(TeamTopic(project.TeamID), EventTaskDeleted, map[string]string{
			"taskId":    task.ID,
			"projectId": task.ProjectID,
		})
	}

	return &Result{
		Message: fmt.Sprintf("Task %q deleted successfully!", task.Title),
	}, nil
}

func (e *Executor) execList(ctx context.Context, cmd Command) (*Result, error) {
	project, err := e.scopedProject(ctx, cmd)
	if err != nil {
		return nil, err
	}
	tasks, err := e.store.FindTasksByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	// Members see only their own and unassigned tasks.
	if cmd.Issuer.Role == domain.RoleMember {
		visible := make([]*domain.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.AssigneeID == nil || *t.AssigneeID == cmd.Issuer.ID {
				visible = append(visible, t)
			}
		}
		tasks = visible
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	return &Result{
		Message: fmt.Sprintf("Found %d task(s) in %s.", len(tasks), project.Name),
		Tasks:   tasks,
	}, nil
}

// notifyTask publishes a task change, best-effort. Missing notifier is a
// legal no-op; delivery is never observed.
func (e *Executor) notifyTask(teamID, event string, task *domain.Task) {
	if e.notifier == nil {
		return
	}
	e.notifier.Publish(TeamTopic(teamID), event, task)
}

func refText(ref TaskRef) string {
	if ref.ID != "" {
		return ref.ID
	}
	return ref.Title
}
