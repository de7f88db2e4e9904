package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/rpggio/recipebox/internal/repository"
)

// Collection implements repository.CollectionStore for SQLite. Every write
// publishes a fresh snapshot to the subscribers of its scope.
type Collection struct {
	db     *DB
	logger *slog.Logger

	mu     sync.Mutex
	subs   map[string]map[int]*subscriber
	nextID int
}

// NewCollection creates a new Collection
func NewCollection(db *DB, logger *slog.Logger) *Collection {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Collection{
		db:     db,
		logger: logger,
		subs:   make(map[string]map[int]*subscriber),
	}
}

// Add stores a new document and returns its generated ID
func (c *Collection) Add(ctx context.Context, scope string, data map[string]any) (string, error) {
	uid, err := authorize(ctx)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", repository.ErrInvalidInput, err)
	}

	id := uuid.NewString()
	_, err = c.db.ExecContext(ctx, `
		INSERT INTO documents (scope, id, data, created_by, updated_by)
		VALUES (?, ?, ?, ?, ?)
	`, scope, id, string(payload), uid, uid)
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("document id collision: %w", err)
		}
		return "", fmt.Errorf("failed to add document: %w", err)
	}

	c.notify(scope)
	return id, nil
}

// Update merges fields into an existing document
func (c *Collection) Update(ctx context.Context, scope, id string, fields map[string]any) error {
	uid, err := authorize(ctx)
	if err != nil {
		return err
	}

	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("%w: %w", repository.ErrInvalidInput, err)
	}

	result, err := c.db.ExecContext(ctx, `
		UPDATE documents
		SET data = json_patch(data, ?), updated_by = ?, updated_at = CURRENT_TIMESTAMP
		WHERE scope = ? AND id = ?
	`, string(patch), uid, scope, id)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	if err := requireAffected(result); err != nil {
		return err
	}

	c.notify(scope)
	return nil
}

// Delete removes a document
func (c *Collection) Delete(ctx context.Context, scope, id string) error {
	if _, err := authorize(ctx); err != nil {
		return err
	}

	result, err := c.db.ExecContext(ctx, `DELETE FROM documents WHERE scope = ? AND id = ?`, scope, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if err := requireAffected(result); err != nil {
		return err
	}

	c.notify(scope)
	return nil
}

// List returns every document of a scope in insertion order
func (c *Collection) List(ctx context.Context, scope string) ([]repository.Document, error) {
	if _, err := authorize(ctx); err != nil {
		return nil, err
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT id, data FROM documents
		WHERE scope = ?
		ORDER BY seq
	`, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := []repository.Document{}
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		data := map[string]any{}
		if err := json.Unmarshal([]byte(payload), &data); err != nil {
			return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
		}
		docs = append(docs, repository.Document{ID: id, Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	return docs, nil
}

// OpenSubscription delivers the current contents of the scope, then a new
// snapshot after every change. Callbacks run on a dedicated goroutine, one
// at a time. After onError no further callbacks are made.
func (c *Collection) OpenSubscription(ctx context.Context, scope string, onSnapshot repository.SnapshotFunc, onError repository.ErrorFunc) (func(), error) {
	if _, err := authorize(ctx); err != nil {
		return nil, err
	}

	sub := &subscriber{
		scope:      scope,
		onSnapshot: onSnapshot,
		onError:    onError,
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	sub.wake <- struct{}{}

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	if c.subs[scope] == nil {
		c.subs[scope] = make(map[int]*subscriber)
	}
	c.subs[scope][id] = sub
	c.mu.Unlock()

	c.logger.Debug("subscription opened", "scope", scope, "subscriber", id)
	go c.serve(context.WithoutCancel(ctx), id, sub)

	return func() { c.unsubscribe(id, sub) }, nil
}

// Refresh publishes a fresh snapshot to every open subscription.
func (c *Collection) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, subs := range c.subs {
		for _, sub := range subs {
			sub.poke()
		}
	}
}

func (c *Collection) serve(ctx context.Context, id int, sub *subscriber) {
	for {
		select {
		case <-sub.done:
			return
		case <-sub.wake:
		}
		select {
		case <-sub.done:
			return
		default:
		}

		docs, err := c.List(ctx, sub.scope)
		if err != nil {
			c.logger.Error("subscription query failed", "scope", sub.scope, "error", err)
			c.unsubscribe(id, sub)
			sub.onError(err)
			return
		}
		sub.onSnapshot(docs)
	}
}

func (c *Collection) unsubscribe(id int, sub *subscriber) {
	sub.closeOnce.Do(func() { close(sub.done) })

	c.mu.Lock()
	defer c.mu.Unlock()
	if subs, ok := c.subs[sub.scope]; ok {
		delete(subs, id)
		if len(subs) == 0 {
			delete(c.subs, sub.scope)
		}
	}
}

func (c *Collection) notify(scope string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, sub := range c.subs[scope] {
		sub.poke()
	}
}

type subscriber struct {
	scope      string
	onSnapshot repository.SnapshotFunc
	onError    repository.ErrorFunc
	wake       chan struct{}
	done       chan struct{}
	closeOnce  sync.Once
}

// poke schedules a snapshot. Pending wakeups coalesce.
func (s *subscriber) poke() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
