package recipe

import "errors"

var (
	// ErrCommandFailed indicates a create, update or delete was rejected by the store.
	ErrCommandFailed = errors.New("recipe command failed")
	// ErrSubscriptionFailed indicates the live collection stream failed.
	ErrSubscriptionFailed = errors.New("recipe subscription failed")
	// ErrInvalidInput indicates invalid input for recipe operations.
	ErrInvalidInput = errors.New("invalid recipe input")
)
