package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist within the
	// caller's partition. A record owned by another user yields the
	// same error as a record that never existed.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when creating a user whose
	// normalized email is already taken.
	ErrDuplicateEmail = errors.New("email already registered")
)
