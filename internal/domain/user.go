package domain

import "time"

type User struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	TeamID    string
	CreatedAt time.Time
}
