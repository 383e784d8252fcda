package domain

import "time"

type Message struct {
	ID        string
	TeamID    string
	AuthorID  string
	Content   string
	CreatedAt time.Time
}
