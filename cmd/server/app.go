package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/memory"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/phrazzld/todo-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when the in-memory stores are in use.
	db *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore

	jwtService  auth.JWTService
	authService service.AuthService
	taskService service.TaskService
}

// newApplication creates a new application instance with all dependencies initialized.
// A configured database URL selects the Postgres stores, otherwise state
// lives in memory for the life of the process.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if err := app.setupStores(ctx); err != nil {
		return nil, err
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime", cfg.Auth.TokenLifetime.String())

	hasher, err := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	app.authService, err = service.NewAuthService(app.userStore, hasher, hasher, app.jwtService, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	app.taskService, err = service.NewTaskService(app.taskStore, service.NewClockIDGenerator(), logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

func (app *application) setupStores(ctx context.Context) error {
	if !app.config.Database.UsePostgres() {
		app.userStore = memory.NewUserStore()
		app.taskStore = memory.NewTaskStore()
		app.logger.Info("Using in-memory storage")
		return nil
	}

	db, err := setupAppDatabase(ctx, app.config, app.logger)
	if err != nil {
		return err
	}
	app.db = db

	if err := postgres.Migrate(ctx, db, app.logger); err != nil {
		app.cleanup()
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app.userStore = postgres.NewPostgresUserStore(db, app.logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, app.logger)
	return nil
}

// setupAppDatabase establishes a connection to the database and configures connection pools.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established")
	return db, nil
}

// Run serves the API on the configured port until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", app.config.Server.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	if err := app.serve(ctx, ln, app.setupRouter()); err != nil {
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
