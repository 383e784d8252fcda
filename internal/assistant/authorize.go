package assistant

import (
	"fmt"

	"github.com/huddlehq/huddle/internal/domain"
)

// intentRoles is the single authorization table for the assistant. Per-task
// ownership constraints (a member may only touch tasks assigned to them) are
// enforced separately by CheckTaskOwnership once the task is resolved.
var intentRoles = map[IntentTag]map[domain.Role]bool{
	TagCreate: {domain.RoleManager: true, domain.RoleAdmin: true},
	TagUpdate: {domain.RoleMember: true, domain.RoleManager: true, domain.RoleAdmin: true},
	TagMove:   {domain.RoleMember: true, domain.RoleManager: true, domain.RoleAdmin: true},
	TagAssign: {domain.RoleManager: true},
	TagDelete: {domain.RoleAdmin: true},
	TagList:   {domain.RoleMember: true, domain.RoleManager: true, domain.RoleAdmin: true},
}

var intentVerbs = map[IntentTag]string{
	TagCreate: "create tasks",
	TagUpdate: "update tasks",
	TagMove:   "change task status",
	TagAssign: "assign tasks",
	TagDelete: "delete tasks",
	TagList:   "list tasks",
}

// Authorize checks the role table for the given intent. Help, Unknown, and
// Error intents are open to any authenticated caller. A rejection is final:
// the gate never downgrades a command to a partial success.
func Authorize(role domain.Role, tag IntentTag) error {
	allowed, gated := intentRoles[tag]
	if !gated {
		return nil
	}
	if !allowed[role] {
		return fmt.Errorf("%w: a %s is not allowed to %s", ErrForbidden, role, intentVerbs[tag])
	}
	return nil
}

// CheckTaskOwnership enforces the member-only constraint on task mutation:
// a member may act only on tasks where they are the assignee. Managers and
// admins pass unconditionally.
func CheckTaskOwnership(caller *domain.User, task *domain.Task) error {
	if caller.Role != domain.RoleMember {
		return nil
	}
	if task.AssigneeID == nil || *task.AssigneeID != caller.ID {
		return fmt.Errorf("%w: members can only modify tasks assigned to them", ErrForbidden)
	}
	return nil
}
