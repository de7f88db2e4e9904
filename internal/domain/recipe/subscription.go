package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/rpggio/recipebox/internal/repository"
)

// SnapshotEvent carries either the full ordered recipe list or a stream error.
type SnapshotEvent struct {
	Recipes []Recipe
	Err     error
}

// Subscription is a live view of a recipe collection delivered over a channel.
// The store must invoke its callbacks off the subscribing goroutine.
type Subscription struct {
	scope       string
	events      chan SnapshotEvent
	done        chan struct{}
	closeOnce   sync.Once
	unsubscribe func()
}

// Subscribe opens a live subscription on the scope. Close must be called to
// release it.
func (s *Service) Subscribe(ctx context.Context, scope string) (*Subscription, error) {
	sub := &Subscription{
		scope:  scope,
		events: make(chan SnapshotEvent),
		done:   make(chan struct{}),
	}

	unsubscribe, err := s.store.OpenSubscription(ctx, scope, sub.onSnapshot, sub.onError)
	if err != nil {
		s.logger.Error("open subscription failed", "scope", scope, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrSubscriptionFailed, err)
	}
	sub.unsubscribe = unsubscribe
	s.logger.Debug("subscription opened", "scope", scope)
	return sub, nil
}

// Events delivers snapshot events in store emission order. The channel is
// never closed; stop reading after Close.
func (sub *Subscription) Events() <-chan SnapshotEvent {
	return sub.events
}

// Done is closed once the subscription is closed.
func (sub *Subscription) Done() <-chan struct{} {
	return sub.done
}

// Close unsubscribes. Safe to call more than once.
func (sub *Subscription) Close() {
	sub.closeOnce.Do(func() {
		close(sub.done)
		if sub.unsubscribe != nil {
			sub.unsubscribe()
		}
	})
}

func (sub *Subscription) onSnapshot(docs []repository.Document) {
	recipes := make([]Recipe, 0, len(docs))
	for _, doc := range docs {
		recipes = append(recipes, decodeRecipe(doc))
	}
	sub.deliver(SnapshotEvent{Recipes: recipes})
}

func (sub *Subscription) onError(err error) {
	sub.deliver(SnapshotEvent{Err: fmt.Errorf("%w: %w", ErrSubscriptionFailed, err)})
}

func (sub *Subscription) deliver(ev SnapshotEvent) {
	select {
	case sub.events <- ev:
	case <-sub.done:
	}
}

func decodeRecipe(doc repository.Document) Recipe {
	return Recipe{
		ID:           doc.ID,
		Name:         stringField(doc.Data, FieldName),
		Ingredients:  stringField(doc.Data, FieldIngredients),
		Instructions: stringField(doc.Data, FieldInstructions),
		Rating:       intField(doc.Data, FieldRating),
	}
}

func stringField(data map[string]any, key string) string {
	v, _ := data[key].(string)
	return v
}

func intField(data map[string]any, key string) int {
	switch v := data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}
