package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/okovalenko/todovault/internal/domain"
	"github.com/okovalenko/todovault/internal/kv/memory"
)

// fixedClock returns a clock that advances one minute per call, so every
// login gets a distinct timestamp.
func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		ts := current
		current = current.Add(time.Minute)
		return ts
	}
}

func TestSessionServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("records session and history entry", func(t *testing.T) {
		store := memory.NewStore()
		svc := NewSessionService(store, zerolog.Nop())
		svc.now = fixedClock(time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))

		require.NoError(t, svc.Login(ctx, "alice"))

		username, err := svc.Current(ctx)
		require.NoError(t, err)
		require.Equal(t, "alice", username)

		history, err := svc.History(ctx)
		require.NoError(t, err)
		require.Equal(t, domain.LoginHistory{"2026-08-01T10:00:00Z"}, history)
	})

	t.Run("history is capped at the five most recent entries", func(t *testing.T) {
		store := memory.NewStore()
		svc := NewSessionService(store, zerolog.Nop())
		svc.now = fixedClock(time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))

		for i := 0; i < 7; i++ {
			require.NoError(t, svc.Login(ctx, "alice"))
		}

		history, err := svc.History(ctx)
		require.NoError(t, err)
		require.Len(t, history, domain.HistoryLimit)

		// Most-recent-first: the 7th login (10:06) leads, the first two
		// logins have been discarded.
		require.Equal(t, domain.LoginHistory{
			"2026-08-01T10:06:00Z",
			"2026-08-01T10:05:00Z",
			"2026-08-01T10:04:00Z",
			"2026-08-01T10:03:00Z",
			"2026-08-01T10:02:00Z",
		}, history)
	})

	t.Run("history is shared across accounts", func(t *testing.T) {
		store := memory.NewStore()
		svc := NewSessionService(store, zerolog.Nop())
		svc.now = fixedClock(time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))

		require.NoError(t, svc.Login(ctx, "alice"))
		require.NoError(t, svc.Login(ctx, "bob"))

		history, err := svc.History(ctx)
		require.NoError(t, err)
		require.Len(t, history, 2)
	})
}

func TestSessionServiceLogout(t *testing.T) {
	ctx := context.Background()

	store := memory.NewStore()
	svc := NewSessionService(store, zerolog.Nop())
	svc.now = fixedClock(time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))

	require.NoError(t, svc.Login(ctx, "alice"))
	require.NoError(t, svc.Logout(ctx))

	_, err := svc.Current(ctx)
	require.ErrorIs(t, err, domain.ErrNoActiveSession)

	// Logout clears the session only; history survives.
	history, err := svc.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)

	// Logging out twice is harmless.
	require.NoError(t, svc.Logout(ctx))
}

func TestSessionServiceCurrentWithoutLogin(t *testing.T) {
	svc := NewSessionService(memory.NewStore(), zerolog.Nop())

	_, err := svc.Current(context.Background())
	require.ErrorIs(t, err, domain.ErrNoActiveSession)
}
