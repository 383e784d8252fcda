package domain

import "time"

type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Status      TaskStatus

	// AssigneeID is nil for unassigned tasks.
	AssigneeID *string

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
