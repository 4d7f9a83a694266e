// Package backends registers every compiled-in kv store backend.
// It lives apart from package kv so that consumers which only need the
// Store interface don't pull in the database and cloud SDK drivers.
package backends

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/okovalenko/todovault/internal/config"
	"github.com/okovalenko/todovault/internal/kv"
	"github.com/okovalenko/todovault/internal/kv/memory"
	"github.com/okovalenko/todovault/internal/kv/postgres"
	"github.com/okovalenko/todovault/internal/kv/redis"
	"github.com/okovalenko/todovault/internal/kv/s3"
	"github.com/okovalenko/todovault/internal/kv/sqlite"
)

// All returns the opener for every supported backend, keyed by the
// store.backend config value.
func All() map[string]kv.OpenFunc {
	return map[string]kv.OpenFunc{
		"memory": func(ctx context.Context, cfg config.StoreConfig, logger zerolog.Logger) (kv.Store, error) {
			return memory.NewStore(), nil
		},
		"sqlite": func(ctx context.Context, cfg config.StoreConfig, logger zerolog.Logger) (kv.Store, error) {
			return sqlite.NewStore(ctx, sqlite.Config{
				Path:            cfg.SQLite.Path,
				JournalMode:     cfg.SQLite.JournalMode,
				BusyTimeout:     cfg.SQLite.BusyTimeout,
				CacheSize:       cfg.SQLite.CacheSize,
				SynchronousMode: cfg.SQLite.SynchronousMode,
			}, logger)
		},
		"postgres": func(ctx context.Context, cfg config.StoreConfig, logger zerolog.Logger) (kv.Store, error) {
			return postgres.NewStore(ctx, postgres.Config{
				Host:            cfg.Postgres.Host,
				Port:            cfg.Postgres.Port,
				User:            cfg.Postgres.User,
				Password:        cfg.Postgres.Password,
				Database:        cfg.Postgres.Database,
				SSLMode:         cfg.Postgres.SSLMode,
				MaxOpenConns:    cfg.Postgres.MaxOpenConns,
				MaxIdleConns:    cfg.Postgres.MaxIdleConns,
				ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
				ConnMaxIdleTime: cfg.Postgres.ConnMaxIdleTime,
			}, logger)
		},
		"redis": func(ctx context.Context, cfg config.StoreConfig, logger zerolog.Logger) (kv.Store, error) {
			return redis.NewStore(ctx, redis.Config{
				Host:        cfg.Redis.Host,
				Port:        cfg.Redis.Port,
				Password:    cfg.Redis.Password,
				DB:          cfg.Redis.DB,
				PoolSize:    cfg.Redis.PoolSize,
				DialTimeout: cfg.Redis.DialTimeout,
			}, logger)
		},
		"s3": func(ctx context.Context, cfg config.StoreConfig, logger zerolog.Logger) (kv.Store, error) {
			return s3.NewStore(ctx, s3.Config{
				Endpoint:        cfg.S3.Endpoint,
				Region:          cfg.S3.Region,
				Bucket:          cfg.S3.Bucket,
				AccessKeyID:     cfg.S3.AccessKeyID,
				SecretAccessKey: cfg.S3.SecretAccessKey,
				UsePathStyle:    cfg.S3.UsePathStyle,
			}, logger)
		},
	}
}
