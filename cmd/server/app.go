package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/phrazzld/notes-api/internal/config"
	"github.com/phrazzld/notes-api/internal/platform/memory"
	"github.com/phrazzld/notes-api/internal/platform/postgres"
	"github.com/phrazzld/notes-api/internal/service"
	"github.com/phrazzld/notes-api/internal/service/auth"
	"github.com/phrazzld/notes-api/internal/store"
)

const (
	driverPostgres = "postgres"
	driverMemory   = "memory"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	noteStore store.NoteStore

	jwtService  auth.JWTService
	authService auth.Service
	userService service.UserService
	noteService service.NoteService

	registry *prometheus.Registry
}

// newApplication wires stores, services and metrics for the configured driver.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}

	switch cfg.Database.Driver {
	case driverPostgres:
		db, err := setupAppDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		app.db = db
		app.userStore = postgres.NewPostgresUserStore(db, logger)
		app.noteStore = postgres.NewPostgresNoteStore(db, logger)
		app.registry.MustRegister(collectors.NewDBStatsCollector(db, "notes"))
	case driverMemory:
		logger.Warn("Using in-memory stores; data is lost on restart")
		app.userStore = memory.NewUserStore(logger)
		app.noteStore = memory.NewNoteStore(logger)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}

	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"access_token_lifetime_minutes", cfg.Auth.AccessTokenLifetimeMinutes,
		"refresh_token_lifetime_minutes", cfg.Auth.RefreshTokenLifetimeMinutes)

	hasher := auth.NewBcryptHasher()
	app.authService = auth.NewService(app.userStore, hasher, app.jwtService, logger)
	app.userService = service.NewUserService(app.userStore, app.noteStore, hasher, logger)
	app.noteService = service.NewNoteService(app.noteStore, app.userStore, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter(), 10*time.Second); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
		app.db = nil
	}

	app.logger.Info("Application shutdown completed")
}
