package service

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are
	// incorrect. Unknown email and wrong password are deliberately
	// indistinguishable to prevent user enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned when registering an email that is
	// already taken.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// ValidationError reports malformed input. The message is safe to show
// to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(message string) error {
	return &ValidationError{Message: message}
}

// withTimeout bounds a storage call so no operation blocks indefinitely.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
