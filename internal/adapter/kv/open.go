package kv

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"connectong/internal/domain"
	"connectong/internal/infra"
)

// Open builds the backend selected by cfg.StoreDriver. The returned close
// function releases whatever connection or file the backend holds.
func Open(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (domain.KV, func(), error) {
	switch cfg.StoreDriver {
	case infra.DriverMemory:
		return NewMemory(), func() {}, nil
	case infra.DriverBolt:
		db, err := OpenBolt(cfg.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	case infra.DriverPostgres:
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		store := NewPostgres(infra.NewSQLRunner(pool, logger))
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("kv: ensure schema: %w", err)
		}
		return store, pool.Close, nil
	case infra.DriverRedis:
		client, err := infra.NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return NewRedis(client, cfg.RedisPrefix), func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("kv: unsupported driver %q", cfg.StoreDriver)
	}
}
