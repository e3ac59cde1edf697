// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/taibuivan/vodstrm/internal/core/record"
	"github.com/taibuivan/vodstrm/internal/platform/config"
	"github.com/taibuivan/vodstrm/internal/platform/migration"
	pgstore "github.com/taibuivan/vodstrm/internal/platform/postgres"
	redisstore "github.com/taibuivan/vodstrm/internal/platform/redis"
)

// openRecordRepository selects the record backend from the environment.
// The returned close function is idempotent.
func openRecordRepository(ctx context.Context, cfg *config.Config, log *slog.Logger) (record.Repository, func(), error) {
	switch cfg.RecordBackend() {
	case "postgres":
		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}

		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, nil, err
		}

		return record.NewPostgresRepository(pool), sync.OnceFunc(func() {
			log.Info("postgres_pool_closing")
			pool.Close()
		}), nil

	case "redis":
		client, err := redisstore.NewClient(ctx, cfg.RedisURL, log)
		if err != nil {
			return nil, nil, err
		}

		return record.NewRedisRepository(client), sync.OnceFunc(func() {
			log.Info("redis_client_closing")
			if err := client.Close(); err != nil {
				log.Error("redis_close_failed", slog.Any("error", err))
			}
		}), nil

	default:
		log.Warn("record_store_in_memory", slog.String("hint", "set DATABASE_URL or REDIS_URL to keep records across restarts"))
		return record.NewMemoryRepository(), func() {}, nil
	}
}
