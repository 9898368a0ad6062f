// Package main implements the entry point for the to-do API server,
// which registers users and manages each user's task list.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("todo-api: %v", err)
	}
}

// run loads configuration, sets up logging, wires the application and
// serves until SIGINT or SIGTERM.
func run() error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.cleanup()

	return app.Run(ctx)
}

// loadAppConfig loads the configuration from the environment and an
// optional .env file.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"client_origin", cfg.Server.ClientOrigin,
		"storage", storageName(cfg))

	return cfg, nil
}

func storageName(cfg *config.Config) string {
	if cfg.Database.UsePostgres() {
		return "postgres"
	}
	return "memory"
}
