package users

import "errors"

var (
	// ErrNotFound indicates no profile exists for the user.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidInput indicates a validation failure.
	ErrInvalidInput = errors.New("invalid input")
)
