package repository

import "errors"

var (
	// ErrNotFound is returned when a requested document doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied is returned when a request carries no authorization context
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnauthorized is returned when a sign-in credential is rejected
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
