package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrNotConfigured marks a feature whose credentials are absent. Callers
	// degrade to fallback or demo behavior instead of failing.
	ErrNotConfigured = errors.New("not configured")
)

// ValidationError carries the user-facing reason for a rejected input.
type ValidationError struct {
	Reason string
	Fields []string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
