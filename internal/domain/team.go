package domain

import "time"

type Team struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
