package domain

type Role string

const (
	RoleMember  Role = "member"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// ValidRoles is the canonical set of accepted roles.
var ValidRoles = map[Role]bool{
	RoleMember: true, RoleManager: true, RoleAdmin: true,
}

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskDone       TaskStatus = "done"
)

// ValidTaskStatuses is the closed status vocabulary.
var ValidTaskStatuses = map[TaskStatus]bool{
	TaskTodo: true, TaskInProgress: true, TaskDone: true,
}
