// Package service provides business logic services for todovault.
package service

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/okovalenko/todovault/internal/domain"
	"github.com/okovalenko/todovault/internal/kv"
)

// AccountService manages the registered-user directory.
//
// The directory lives under a single store key as an ordered JSON array and
// is rewritten whole on every registration. Records are never edited or
// deleted; there is no account management beyond creation.
type AccountService struct {
	store  kv.Store
	logger zerolog.Logger

	// mu serializes read-modify-rewrite cycles on the directory key
	// within this process. Cross-process writers are out of scope;
	// last write wins.
	mu sync.Mutex
}

// NewAccountService creates a new AccountService.
func NewAccountService(store kv.Store, logger zerolog.Logger) *AccountService {
	return &AccountService{
		store:  store,
		logger: logger.With().Str("service", "account").Logger(),
	}
}

// RegisterInput contains the data needed to register an account.
type RegisterInput struct {
	Username        string
	Password        string
	ConfirmPassword string
}

// Register creates a new account record.
//
// Fails with domain.ErrValidation when any field is empty or
// whitespace-only, or when the password and confirmation differ.
// Fails with domain.ErrDuplicateUser when the exact username is taken.
// A failed registration leaves the directory untouched.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	if strings.TrimSpace(input.Username) == "" ||
		strings.TrimSpace(input.Password) == "" ||
		strings.TrimSpace(input.ConfirmPassword) == "" {
		return domain.User{}, domain.NewDomainError(domain.ErrValidation, "all fields are required", "")
	}
	if input.Password != input.ConfirmPassword {
		return domain.User{}, domain.NewDomainError(domain.ErrValidation, "passwords do not match", "")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := loadJSON[[]domain.User](ctx, s.store, kv.KeyUsers)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load user directory")
		return domain.User{}, err
	}

	for _, u := range users {
		if u.Username == input.Username {
			return domain.User{}, domain.NewDomainError(domain.ErrDuplicateUser, "username is taken", input.Username)
		}
	}

	user := domain.NewUser(input.Username, input.Password)
	users = append(users, user)

	if err := saveJSON(ctx, s.store, kv.KeyUsers, users); err != nil {
		s.logger.Error().Err(err).Str("username", user.Username).Msg("failed to persist user directory")
		return domain.User{}, err
	}

	s.logger.Info().Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Authenticate verifies credentials against the directory.
//
// Fails with domain.ErrNoUsers when the directory is absent or empty, and
// with domain.ErrInvalidCredentials when no record matches the exact
// username and password pair.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	users, err := loadJSON[[]domain.User](ctx, s.store, kv.KeyUsers)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load user directory")
		return domain.User{}, err
	}

	if len(users) == 0 {
		return domain.User{}, domain.ErrNoUsers
	}

	for _, u := range users {
		if u.Matches(username, password) {
			s.logger.Info().Str("username", username).Msg("user authenticated")
			return u, nil
		}
	}

	s.logger.Debug().Str("username", username).Msg("authentication failed")
	return domain.User{}, domain.ErrInvalidCredentials
}

// List returns the full directory. Used by the admin CLI.
func (s *AccountService) List(ctx context.Context) ([]domain.User, error) {
	return loadJSON[[]domain.User](ctx, s.store, kv.KeyUsers)
}
