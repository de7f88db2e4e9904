package navigation

import "errors"

var (
	// ErrTerminal indicates an intent other than GoHome was issued on the not-found screen.
	ErrTerminal = errors.New("not-found screen only allows going home")
	// ErrMissingID indicates a detail or edit intent without a resource ID.
	ErrMissingID = errors.New("resource id required")
	// ErrUnknownIntent indicates an unrecognized intent kind.
	ErrUnknownIntent = errors.New("unknown navigation intent")
)
