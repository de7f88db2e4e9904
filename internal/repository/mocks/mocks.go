package mocks

import (
	"context"

	"github.com/rpggio/recipebox/internal/repository"
	"github.com/stretchr/testify/mock"
)

// CollectionStore is a mock for repository.CollectionStore.
type CollectionStore struct {
	mock.Mock
}

func (m *CollectionStore) Add(ctx context.Context, scope string, data map[string]any) (string, error) {
	args := m.Called(ctx, scope, data)
	return args.String(0), args.Error(1)
}

func (m *CollectionStore) Update(ctx context.Context, scope, id string, fields map[string]any) error {
	args := m.Called(ctx, scope, id, fields)
	return args.Error(0)
}

func (m *CollectionStore) Delete(ctx context.Context, scope, id string) error {
	args := m.Called(ctx, scope, id)
	return args.Error(0)
}

func (m *CollectionStore) List(ctx context.Context, scope string) ([]repository.Document, error) {
	args := m.Called(ctx, scope)
	if list, ok := args.Get(0).([]repository.Document); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CollectionStore) OpenSubscription(ctx context.Context, scope string, onSnapshot repository.SnapshotFunc, onError repository.ErrorFunc) (func(), error) {
	args := m.Called(ctx, scope, onSnapshot, onError)
	if unsubscribe, ok := args.Get(0).(func()); ok {
		return unsubscribe, args.Error(1)
	}
	return nil, args.Error(1)
}

// IdentityProvider is a mock for repository.IdentityProvider.
type IdentityProvider struct {
	mock.Mock
}

func (m *IdentityProvider) SignInWithToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *IdentityProvider) SignInAnonymously(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
