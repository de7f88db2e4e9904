package repository

import "context"

// Document is one entry of a scoped document collection
type Document struct {
	ID   string
	Data map[string]any
}

// SnapshotFunc receives the full, ordered contents of a collection after every change
type SnapshotFunc func(docs []Document)

// ErrorFunc receives a subscription transport error. No snapshots follow it.
type ErrorFunc func(err error)

// CollectionStore manages documents in collections addressed by a scope path
type CollectionStore interface {
	Add(ctx context.Context, scope string, data map[string]any) (string, error)
	Update(ctx context.Context, scope, id string, fields map[string]any) error
	Delete(ctx context.Context, scope, id string) error
	List(ctx context.Context, scope string) ([]Document, error)
	OpenSubscription(ctx context.Context, scope string, onSnapshot SnapshotFunc, onError ErrorFunc) (func(), error)
}

// IdentityProvider signs callers in and returns their user ID
type IdentityProvider interface {
	SignInWithToken(ctx context.Context, token string) (string, error)
	SignInAnonymously(ctx context.Context) (string, error)
}
