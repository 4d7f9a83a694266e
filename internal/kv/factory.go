// Package kv provides the persistent key-value store for todovault.
// This file contains the factory that opens a backend based on configuration.
package kv

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/okovalenko/todovault/internal/config"
)

// OpenFunc opens a concrete store backend from configuration.
// Each backend package registers itself through Backends in the server
// entrypoint; this keeps kv free of backend imports (and their drivers)
// for consumers that only need the interface.
type OpenFunc func(ctx context.Context, cfg config.StoreConfig, logger zerolog.Logger) (Store, error)

// Factory creates a Store based on configuration.
type Factory struct {
	cfg      config.StoreConfig
	logger   zerolog.Logger
	backends map[string]OpenFunc
}

// NewFactory creates a new store factory with the given backend openers.
func NewFactory(cfg config.StoreConfig, logger zerolog.Logger, backends map[string]OpenFunc) *Factory {
	return &Factory{
		cfg:      cfg,
		logger:   logger,
		backends: backends,
	}
}

// Backend returns the configured backend name.
func (f *Factory) Backend() string {
	return f.cfg.Backend
}

// IsEmbedded returns true if the backend needs no external service.
func (f *Factory) IsEmbedded() bool {
	return f.cfg.IsEmbedded()
}

// Open opens the configured backend.
func (f *Factory) Open(ctx context.Context) (Store, error) {
	open, ok := f.backends[f.cfg.Backend]
	if !ok {
		return nil, fmt.Errorf("unknown store backend %q", f.cfg.Backend)
	}

	store, err := open(ctx, f.cfg, f.logger.With().Str("store", f.cfg.Backend).Logger())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", f.cfg.Backend, err)
	}

	f.logger.Info().Str("backend", f.cfg.Backend).Msg("store opened")
	return store, nil
}
