package service

import "errors"

// ValidationError is the domain error raised when a request is well formed
// but violates a registration or update rule (duplicate username, bad phone
// number, ...). Its message is safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}

// ErrInvalidUserID is returned when a user id path parameter is not a UUID.
var ErrInvalidUserID = errors.New("invalid user id")
