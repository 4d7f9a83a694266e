package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/okovalenko/todovault/internal/domain"
	"github.com/okovalenko/todovault/internal/kv"
)

// SessionService tracks the active login and the bounded login history.
//
// The session is a single plain-string value (the username) under one key;
// the history is a global JSON array of RFC 3339 timestamps capped at
// domain.HistoryLimit entries, most-recent-first. The history is shared by
// all accounts on the device, which mirrors the observed product behavior.
type SessionService struct {
	store  kv.Store
	logger zerolog.Logger

	// now is injectable for deterministic history tests.
	now func() time.Time

	mu sync.Mutex
}

// NewSessionService creates a new SessionService.
func NewSessionService(store kv.Store, logger zerolog.Logger) *SessionService {
	return &SessionService{
		store:  store,
		logger: logger.With().Str("service", "session").Logger(),
		now:    time.Now,
	}
}

// Login records username as the active session and prepends the current
// timestamp to the login history, truncating to the most recent
// domain.HistoryLimit entries. Both values are persisted.
func (s *SessionService) Login(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := loadJSON[domain.LoginHistory](ctx, s.store, kv.KeyLoginHistory)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load login history")
		return err
	}

	history = history.Prepend(s.now().UTC().Format(time.RFC3339))
	if err := saveJSON(ctx, s.store, kv.KeyLoginHistory, history); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist login history")
		return err
	}

	// The session value is a plain string, not JSON, matching the
	// original key layout.
	if err := s.store.Set(ctx, kv.KeyLoggedInUser, []byte(username)); err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to persist session")
		return fmt.Errorf("%w: write %q: %v", domain.ErrStorage, kv.KeyLoggedInUser, err)
	}

	s.logger.Info().Str("username", username).Msg("session started")
	return nil
}

// Logout clears the active session. Login history and tasks are untouched.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Remove(ctx, kv.KeyLoggedInUser); err != nil {
		s.logger.Error().Err(err).Msg("failed to clear session")
		return fmt.Errorf("%w: remove %q: %v", domain.ErrStorage, kv.KeyLoggedInUser, err)
	}

	s.logger.Info().Msg("session ended")
	return nil
}

// Current returns the username of the active session.
// Returns domain.ErrNoActiveSession when nobody is logged in.
func (s *SessionService) Current(ctx context.Context) (string, error) {
	value, err := s.store.Get(ctx, kv.KeyLoggedInUser)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return "", domain.ErrNoActiveSession
		}
		return "", fmt.Errorf("%w: read %q: %v", domain.ErrStorage, kv.KeyLoggedInUser, err)
	}

	username := string(value)
	if username == "" {
		return "", domain.ErrNoActiveSession
	}
	return username, nil
}

// History returns the login timestamps, most-recent-first, at most
// domain.HistoryLimit entries.
func (s *SessionService) History(ctx context.Context) (domain.LoginHistory, error) {
	return loadJSON[domain.LoginHistory](ctx, s.store, kv.KeyLoginHistory)
}
