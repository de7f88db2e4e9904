package identity

import "context"

// Provider is the external sign-in capability.
type Provider interface {
	SignInWithToken(ctx context.Context, token string) (string, error)
	SignInAnonymously(ctx context.Context) (string, error)
}
