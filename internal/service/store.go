// Package service provides business logic services for todovault.
// This file contains the shared persistence helpers: every durable
// collection is a JSON array rewritten whole on each mutation.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/okovalenko/todovault/internal/domain"
	"github.com/okovalenko/todovault/internal/kv"
)

// loadJSON decodes the JSON collection stored at key.
// An absent key yields the zero value: an empty collection and a missing
// one are indistinguishable by design.
// Backend failures are classified under domain.ErrStorage.
func loadJSON[T any](ctx context.Context, store kv.Store, key string) (T, error) {
	var out T

	data, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return out, nil
		}
		return out, fmt.Errorf("%w: read %q: %v", domain.ErrStorage, key, err)
	}

	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("%w: corrupt value at %q: %v", domain.ErrStorage, key, err)
	}
	return out, nil
}

// saveJSON serializes v and rewrites the full value at key.
func saveJSON(ctx context.Context, store kv.Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %q: %v", domain.ErrStorage, key, err)
	}
	if err := store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("%w: write %q: %v", domain.ErrStorage, key, err)
	}
	return nil
}
