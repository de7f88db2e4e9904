package identity

import "errors"

var (
	// ErrAuthFailed indicates the sign-in attempt was rejected.
	ErrAuthFailed = errors.New("authentication failed")
	// ErrUnconfigured indicates no identity provider credentials were supplied.
	ErrUnconfigured = errors.New("identity provider not configured")
)
