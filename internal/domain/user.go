package domain

import "time"

// User represents a registered account. Email is stored normalized
// (lowercased, trimmed) and is unique across all users.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
