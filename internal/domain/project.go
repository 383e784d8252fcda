package domain

import "time"

type Project struct {
	ID          string
	TeamID      string
	Name        string
	Description string
	CreatedAt   time.Time
}
