package identity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/recipebox/internal/domain/identity"
	"github.com/rpggio/recipebox/internal/repository"
	"github.com/rpggio/recipebox/internal/repository/mocks"
	"github.com/stretchr/testify/require"
)

func TestIdentityService_SignIn_Anonymous(t *testing.T) {
	ctx := context.Background()
	provider := &mocks.IdentityProvider{}
	provider.On("SignInAnonymously", ctx).Return("uid-1", nil).Once()

	svc := identity.NewService(provider, "", nil)
	require.Equal(t, identity.StatusPending, svc.Status())
	require.Nil(t, svc.Current())

	id, err := svc.SignIn(ctx)
	require.NoError(t, err)
	require.Equal(t, "uid-1", id.UID)
	require.True(t, id.Anonymous)
	require.Equal(t, identity.StatusAuthenticated, svc.Status())
	require.Equal(t, "uid-1", svc.Current().UID)

	// A second call must not reach the provider again.
	again, err := svc.SignIn(ctx)
	require.NoError(t, err)
	require.Equal(t, "uid-1", again.UID)
	provider.AssertExpectations(t)
}

func TestIdentityService_SignIn_Token(t *testing.T) {
	ctx := context.Background()
	provider := &mocks.IdentityProvider{}
	provider.On("SignInWithToken", ctx, "secret").Return("uid-7", nil)

	svc := identity.NewService(provider, "secret", nil)
	id, err := svc.SignIn(ctx)
	require.NoError(t, err)
	require.Equal(t, "uid-7", id.UID)
	require.False(t, id.Anonymous)
	provider.AssertNotCalled(t, "SignInAnonymously", ctx)
}

func TestIdentityService_SignIn_FailureIsFinal(t *testing.T) {
	ctx := context.Background()
	provider := &mocks.IdentityProvider{}
	provider.On("SignInWithToken", ctx, "bad").Return("", repository.ErrUnauthorized).Once()

	svc := identity.NewService(provider, "bad", nil)
	_, err := svc.SignIn(ctx)
	require.ErrorIs(t, err, identity.ErrAuthFailed)
	require.ErrorIs(t, err, repository.ErrUnauthorized)
	require.Equal(t, identity.StatusError, svc.Status())
	require.Nil(t, svc.Current())

	_, err = svc.SignIn(ctx)
	require.ErrorIs(t, err, identity.ErrAuthFailed)
	provider.AssertNumberOfCalls(t, "SignInWithToken", 1)
}

func TestIdentityService_Unconfigured(t *testing.T) {
	svc := identity.NewService(nil, "", nil)
	require.Equal(t, identity.StatusUninitialized, svc.Status())

	_, err := svc.SignIn(context.Background())
	require.True(t, errors.Is(err, identity.ErrUnconfigured))
	require.Equal(t, identity.StatusUninitialized, svc.Status())
}

func TestIdentityContext(t *testing.T) {
	_, ok := identity.FromContext(context.Background())
	require.False(t, ok)

	ctx := identity.NewContext(context.Background(), identity.Identity{UID: "u1"})
	id, ok := identity.FromContext(ctx)
	require.True(t, ok)
	require.Equal(t, "u1", id.UID)
}
