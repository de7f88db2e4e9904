package recipe

import (
	"context"
	"fmt"
	"log/slog"
)

// Service issues recipe commands against the document store.
type Service struct {
	store  CollectionStore
	logger *slog.Logger
}

// NewService creates a new recipe service.
func NewService(store CollectionStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: store, logger: logger}
}

// Create persists a validated recipe and returns the store-assigned ID.
func (s *Service) Create(ctx context.Context, scope string, rec Recipe) (string, error) {
	id, err := s.store.Add(ctx, scope, rec.data())
	if err != nil {
		s.logger.Error("create recipe failed", "scope", scope, "error", err)
		return "", fmt.Errorf("%w: create: %w", ErrCommandFailed, err)
	}
	s.logger.Info("recipe created", "id", id)
	return id, nil
}

// Update applies a partial patch. The ID is never part of the patch.
func (s *Service) Update(ctx context.Context, scope, id string, fields Fields) error {
	if id == "" {
		return ErrInvalidInput
	}
	if err := s.store.Update(ctx, scope, id, fields.data()); err != nil {
		s.logger.Error("update recipe failed", "id", id, "error", err)
		return fmt.Errorf("%w: update: %w", ErrCommandFailed, err)
	}
	s.logger.Info("recipe updated", "id", id)
	return nil
}

// Delete removes a recipe.
func (s *Service) Delete(ctx context.Context, scope, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	if err := s.store.Delete(ctx, scope, id); err != nil {
		s.logger.Error("delete recipe failed", "id", id, "error", err)
		return fmt.Errorf("%w: delete: %w", ErrCommandFailed, err)
	}
	s.logger.Info("recipe deleted", "id", id)
	return nil
}
