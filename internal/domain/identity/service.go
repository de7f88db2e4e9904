package identity

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Service adapts the external provider to a single sign-in per process.
type Service struct {
	provider Provider
	token    string
	logger   *slog.Logger

	once    sync.Once
	mu      sync.RWMutex
	status  AuthStatus
	current *Identity
	err     error
}

// NewService creates an identity service. A nil provider means the backing
// service was never configured and the service starts Uninitialized.
func NewService(provider Provider, token string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	status := StatusPending
	if provider == nil {
		status = StatusUninitialized
	}
	return &Service{
		provider: provider,
		token:    token,
		logger:   logger,
		status:   status,
	}
}

// SignIn performs token sign-in when a token is configured and anonymous
// sign-in otherwise. Only the first call reaches the provider; later calls
// return the same outcome.
func (s *Service) SignIn(ctx context.Context) (*Identity, error) {
	if s.provider == nil {
		s.logger.Warn("identity provider not configured, CRUD operations are disabled")
		return nil, ErrUnconfigured
	}

	s.once.Do(func() {
		id, err := s.signIn(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			s.status = StatusError
			s.err = err
			s.logger.Error("sign-in failed", "error", err)
			return
		}
		s.status = StatusAuthenticated
		s.current = id
		s.logger.Info("signed in", "uid", id.UID, "anonymous", id.Anonymous)
	})

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	current := *s.current
	return &current, nil
}

func (s *Service) signIn(ctx context.Context) (*Identity, error) {
	if s.token != "" {
		uid, err := s.provider.SignInWithToken(ctx, s.token)
		if err != nil {
			return nil, fmt.Errorf("%w: token sign-in: %w", ErrAuthFailed, err)
		}
		return &Identity{UID: uid}, nil
	}

	uid, err := s.provider.SignInAnonymously(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: anonymous sign-in: %w", ErrAuthFailed, err)
	}
	return &Identity{UID: uid, Anonymous: true}, nil
}

// Current returns the signed-in identity, or nil before a successful sign-in.
func (s *Service) Current() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	current := *s.current
	return &current
}

// Status reports the authentication status.
func (s *Service) Status() AuthStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}
