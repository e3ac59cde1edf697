// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the vodstrm HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the record backend (PostgreSQL + migrations, Redis, or memory).
//  4. Build the settings store, aggregator client and resolver.
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/vodstrm/internal/api"
	"github.com/taibuivan/vodstrm/internal/core/archive"
	"github.com/taibuivan/vodstrm/internal/core/generate"
	"github.com/taibuivan/vodstrm/internal/core/record"
	"github.com/taibuivan/vodstrm/internal/core/resolve"
	"github.com/taibuivan/vodstrm/internal/core/settings"
	"github.com/taibuivan/vodstrm/internal/core/vod"
	"github.com/taibuivan/vodstrm/internal/platform/config"
	"github.com/taibuivan/vodstrm/internal/platform/constants"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("record_backend", cfg.RecordBackend()),
	)

	// Root context for startup. A 30s deadline surfaces misconfiguration
	// quickly instead of hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Record Backend ─────────────────────────────────────────────────
	repository, closeRepository, err := openRecordRepository(startupCtx, cfg, log)
	must(log, err, "open record backend")
	defer closeRepository()

	// ── 4. Core Components ────────────────────────────────────────────────
	settingsStore := settings.NewStore(cfg.VodAPI, cfg.VodSources...)
	vodClient := vod.NewClient(settingsStore, cfg.UpstreamTimeout)
	resolver := resolve.New(cfg.ResolveTimeout, log)

	recordService := record.NewService(repository)
	generateService := generate.NewService(archive.NewAssembler(resolver), recordService, vodClient)

	// ── 5. Health handlers (wired with the real dependency checker) ───────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		StoreName:  cfg.RecordBackend(),
		CheckStore: recordService.Ping,
	}, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Settings:  settings.NewHandler(settingsStore),
		Vod:       vod.NewHandler(vodClient),
		Generate:  generate.NewHandler(generateService),
		Record:    record.NewHandler(recordService),
	}

	// ── 6. HTTP Server ────────────────────────────────────────────────────
	// appCtx stops background workers (rate-limit sweeper) on shutdown.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	server := api.NewServer(appCtx, cfg, log, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight archive builds enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("server_shutting_down", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		closeRepository()
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// must logs the error and exits if err is non-nil.
func must(log *slog.Logger, err error, action string) {
	if err != nil {
		log.Error("startup_failed", slog.String("action", action), slog.Any("error", err))
		os.Exit(1)
	}
}
