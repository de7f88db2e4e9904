package app

import "errors"

var (
	// ErrStopped indicates the controller loop is no longer running.
	ErrStopped = errors.New("controller stopped")
	// ErrAlreadyRunning indicates Run was called twice.
	ErrAlreadyRunning = errors.New("controller already running")
	// ErrNoForm indicates a form action outside the create and edit screens.
	ErrNoForm = errors.New("no form on the current screen")
	// ErrUnknownField indicates a form field that does not exist.
	ErrUnknownField = errors.New("unknown form field")
)
