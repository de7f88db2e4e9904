package recipe

import (
	"context"

	"github.com/rpggio/recipebox/internal/repository"
)

// CollectionStore is the external document store capability.
type CollectionStore interface {
	Add(ctx context.Context, scope string, data map[string]any) (string, error)
	Update(ctx context.Context, scope, id string, fields map[string]any) error
	Delete(ctx context.Context, scope, id string) error
	OpenSubscription(ctx context.Context, scope string, onSnapshot repository.SnapshotFunc, onError repository.ErrorFunc) (func(), error)
}
