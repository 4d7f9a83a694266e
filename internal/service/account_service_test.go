package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/okovalenko/todovault/internal/domain"
	"github.com/okovalenko/todovault/internal/kv"
	"github.com/okovalenko/todovault/internal/kv/memory"
)

func newAccountService(store kv.Store) *AccountService {
	return NewAccountService(store, zerolog.Nop())
}

func TestAccountServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects blank fields without mutating the directory", func(t *testing.T) {
		store := memory.NewStore()
		svc := newAccountService(store)

		inputs := []RegisterInput{
			{Username: "", Password: "pw", ConfirmPassword: "pw"},
			{Username: "   ", Password: "pw", ConfirmPassword: "pw"},
			{Username: "alice", Password: "", ConfirmPassword: ""},
			{Username: "alice", Password: "pw", ConfirmPassword: "  "},
		}
		for _, input := range inputs {
			_, err := svc.Register(ctx, input)
			require.ErrorIs(t, err, domain.ErrValidation)
		}

		users, err := svc.List(ctx)
		require.NoError(t, err)
		require.Empty(t, users)
	})

	t.Run("rejects mismatched confirmation", func(t *testing.T) {
		store := memory.NewStore()
		svc := newAccountService(store)

		_, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "pw1", ConfirmPassword: "pw2"})
		require.ErrorIs(t, err, domain.ErrValidation)

		users, err := svc.List(ctx)
		require.NoError(t, err)
		require.Empty(t, users)
	})

	t.Run("rejects duplicate usernames keeping one record", func(t *testing.T) {
		store := memory.NewStore()
		svc := newAccountService(store)

		_, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "pw1", ConfirmPassword: "pw1"})
		require.NoError(t, err)

		_, err = svc.Register(ctx, RegisterInput{Username: "alice", Password: "other", ConfirmPassword: "other"})
		require.ErrorIs(t, err, domain.ErrDuplicateUser)

		users, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		require.Equal(t, "alice", users[0].Username)
		require.Equal(t, "pw1", users[0].Password)
	})

	t.Run("usernames are case-sensitive", func(t *testing.T) {
		store := memory.NewStore()
		svc := newAccountService(store)

		_, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "pw", ConfirmPassword: "pw"})
		require.NoError(t, err)

		_, err = svc.Register(ctx, RegisterInput{Username: "Alice", Password: "pw", ConfirmPassword: "pw"})
		require.NoError(t, err)

		users, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
	})
}

func TestAccountServiceAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("fails when the directory is empty", func(t *testing.T) {
		svc := newAccountService(memory.NewStore())

		_, err := svc.Authenticate(ctx, "alice", "pw1")
		require.ErrorIs(t, err, domain.ErrNoUsers)
	})

	t.Run("matches exact credentials only", func(t *testing.T) {
		svc := newAccountService(memory.NewStore())

		_, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "pw1", ConfirmPassword: "pw1"})
		require.NoError(t, err)

		user, err := svc.Authenticate(ctx, "alice", "pw1")
		require.NoError(t, err)
		require.Equal(t, "alice", user.Username)

		_, err = svc.Authenticate(ctx, "alice", "wrong")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)

		_, err = svc.Authenticate(ctx, "bob", "pw1")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
