// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Person HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Load build metadata for the API documentation.
//  4. Open the person store and bootstrap its schema.
//  5. Connect to Redis (optional read cache).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// The listener is created only after step 4 succeeds. All wiring is explicit
// constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/personapi/internal/api"
	"github.com/taibuivan/personapi/internal/person"
	"github.com/taibuivan/personapi/internal/platform/buildinfo"
	"github.com/taibuivan/personapi/internal/platform/config"
	"github.com/taibuivan/personapi/internal/platform/constants"
	"github.com/taibuivan/personapi/internal/platform/openapi"
	redisstore "github.com/taibuivan/personapi/internal/platform/redis"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("database_driver", cfg.DatabaseDriver),
		slog.Bool("cache_enabled", cfg.CacheEnabled()),
	)

	// ── 3. Build Metadata ─────────────────────────────────────────────────
	info, err := buildinfo.Load(cfg.BuildInfoPath)
	must(log, err, "load build info")

	// Root context for the process; cancelled on shutdown.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// Startup deadline so misconfiguration is caught quickly rather than
	// hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(appCtx, constants.StartupTimeout)
	defer startupCancel()

	// ── 4. Store + Schema Bootstrap ───────────────────────────────────────
	store, err := openStore(startupCtx, cfg, log)
	must(log, err, "open person store")
	defer store.close()

	var repository person.Repository = store.repository
	var checkCache func() error

	// ── 5. Redis ──────────────────────────────────────────────────────────
	if cfg.CacheEnabled() {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		cache := redisstore.NewCache(rdb, person.ErrCacheMiss)
		repository = person.NewCachedRepository(repository, cache, cfg.CacheTTL, log)
		checkCache = func() error { return redisstore.Ping(appCtx, rdb) }
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error { return store.ping(appCtx) },
		CheckCache:    checkCache,
	}, log)

	personService := person.NewService(repository, log)
	personHandler := person.NewHandler(personService)

	server, err := api.NewServer(appCtx, cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Person:    personHandler,
		Docs:      openapi.New(info),
	})
	must(log, err, "build http server")

	// ── 7. HTTP Server + Graceful Shutdown ────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	exitCode := 0

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
		exitCode = 1
	}

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))
	appCancel()

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		exitCode = 1
	}

	if exitCode != 0 {
		// Deferred closers do not run after os.Exit.
		store.close()
		os.Exit(exitCode)
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the process-wide JSON logger.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
