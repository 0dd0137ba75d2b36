package domain

import "time"

// Todo represents a single task item owned by exactly one user.
type Todo struct {
	ID        string
	OwnerID   string
	Text      string
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TodoUpdate carries a partial update. Nil fields are left unchanged.
type TodoUpdate struct {
	Text      *string
	Completed *bool
}
