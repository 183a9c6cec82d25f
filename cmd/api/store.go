// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/taibuivan/personapi/internal/person"
	"github.com/taibuivan/personapi/internal/platform/config"
	"github.com/taibuivan/personapi/internal/platform/migration"
	pgstore "github.com/taibuivan/personapi/internal/platform/postgres"
	"github.com/taibuivan/personapi/internal/platform/sqlite"
)

// personStore bundles a repository with the lifecycle hooks of its backend.
type personStore struct {
	repository person.Repository
	ping       func(context.Context) error
	closeFn    func()
	closeOnce  sync.Once
}

func (s *personStore) close() {
	s.closeOnce.Do(s.closeFn)
}

// openStore makes sure the schema of the configured backend exists and
// connects to it. It returns an error, and holds no open resources, if either
// step fails.
//
// For PostgreSQL the migrations run first on their own short-lived
// connection, so a bad SCHEMA_PATH is reported before any pool is opened.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (*personStore, error) {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		if err := migration.RunUp(cfg.DatabaseURL, cfg.SchemaPath, log); err != nil {
			return nil, err
		}

		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, err
		}

		return &personStore{
			repository: person.NewPostgresRepository(pool),
			ping: func(ctx context.Context) error {
				return pgstore.Ping(ctx, pool)
			},
			closeFn: func() {
				log.Info("closing postgres pool")
				pool.Close()
			},
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.DatabaseURL, log, cfg.Debug)
		if err != nil {
			return nil, err
		}

		if err := person.AutoMigrate(db.WithContext(ctx)); err != nil {
			_ = sqlite.Close(db)
			return nil, err
		}

		return &personStore{
			repository: person.NewGormRepository(db),
			ping: func(ctx context.Context) error {
				return sqlite.Ping(ctx, db)
			},
			closeFn: func() {
				log.Info("closing sqlite database")
				if err := sqlite.Close(db); err != nil {
					log.Error("sqlite close error", slog.Any("error", err))
				}
			},
		}, nil
	}

	return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
}
