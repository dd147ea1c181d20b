package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/setlists/internal/server"
	"github.com/desertthunder/setlists/internal/services"
	"github.com/desertthunder/setlists/internal/shared"
)

// Serve opens the database, runs migrations, and serves the HTTP API until SIGINT or SIGTERM.
//
// A lock file next to the database keeps a second server from writing to the same file.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if err := shared.ApplyLogLevel(r.logger, config.Log.Level); err != nil {
		return err
	}

	unlock, err := lockDatabase(config.Database.Path)
	if err != nil {
		return err
	}
	defer unlock()

	db, err := shared.OpenDatabase(config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	srv := server.New(server.Options{
		Config:  config.Server,
		Members: services.NewMembershipService(db, shared.WithLogger(r.logger, "component", "members")),
		Catalog: services.NewCatalogService(db, shared.WithLogger(r.logger, "component", "catalog")),
		Logger:  shared.WithLogger(r.logger, "component", "http"),
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	r.logger.Info("server listening", "addr", srv.Addr, "database", config.Database.Path)

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	r.logger.Info("shutting down", "timeout", config.Server.ShutdownTimeout())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Server.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	r.logger.Info("server stopped")
	return nil
}

// lockDatabase takes an exclusive lock on path + ".lock". In-memory databases need no lock.
func lockDatabase(path string) (func(), error) {
	if shared.IsMemoryPath(path) {
		return func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire database lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: another server is already using %s", shared.ErrServiceUnavailable, path)
	}

	return func() { _ = lock.Unlock() }, nil
}
