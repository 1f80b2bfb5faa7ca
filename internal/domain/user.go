package domain

import "time"

// User represents a registered user of the system. Username is unique
// across all users.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
