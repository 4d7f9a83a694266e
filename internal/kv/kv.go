// Package kv defines the persistent key-value store abstraction for todovault.
// Every durable collection (user directory, login history, session, per-user
// task lists) is a JSON-encoded value under a single string key, rewritten
// whole on each mutation. The interface abstracts the backend, allowing
// embedded (SQLite, memory) and networked (PostgreSQL, Redis, S3)
// implementations while keeping the service layer clean.
package kv

import (
	"context"
	"errors"
)

// ErrKeyNotFound indicates the requested key does not exist in the store.
var ErrKeyNotFound = errors.New("key not found")

// Store defines the interface for persistent key-value access.
type Store interface {
	// Get retrieves the value stored under key.
	// Returns ErrKeyNotFound if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes the key and its value.
	// Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// Key layout shared by all backends. Values are JSON.
const (
	// KeyUsers holds the ordered account directory.
	KeyUsers = "users"

	// KeyLoginHistory holds the bounded recent-login timestamp log.
	KeyLoginHistory = "loginHistory"

	// KeyLoggedInUser holds the active session username, absent when
	// logged out.
	KeyLoggedInUser = "loggedInUser"

	// taskKeyPrefix prefixes per-user task list keys.
	taskKeyPrefix = "tasks_"
)

// TaskKey returns the store key for a user's task list.
func TaskKey(username string) string {
	return taskKeyPrefix + username
}
