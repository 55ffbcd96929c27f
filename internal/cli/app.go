package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"timesheet/internal/config"
	"timesheet/internal/database"
	"timesheet/internal/repository/sqlstore"
	"timesheet/internal/services"
)

// App holds the opened store and the services built over it.
type App struct {
	config   *config.Config
	repo     *sqlstore.SQLRepository
	services *services.ServiceContainer
	out      io.Writer
}

// NewApp creates a CLI application over an already opened repository.
func NewApp(cfg *config.Config, repo *sqlstore.SQLRepository, out io.Writer) *App {
	if out == nil {
		out = os.Stdout
	}
	return &App{
		config:   cfg,
		repo:     repo,
		services: services.NewServiceContainer(repo, cfg),
		out:      out,
	}
}

// OpenApp opens the configured database, applies pending migrations and
// builds the application.
func OpenApp(ctx context.Context, cfg *config.Config, out io.Writer) (*App, error) {
	app, err := OpenAppWithoutMigrations(ctx, cfg, out)
	if err != nil {
		return nil, err
	}

	if err := database.RunMigrations(app.repo.DB(), app.repo.Dialect(), cfg.Database.DSN); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// OpenAppWithoutMigrations opens the configured database as it is.
func OpenAppWithoutMigrations(ctx context.Context, cfg *config.Config, out io.Writer) (*App, error) {
	repo, err := openRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewApp(cfg, repo, out), nil
}

// Close releases the database connection.
func (a *App) Close() error {
	return a.repo.Close()
}

// openRepository opens the configured store and checks that it is reachable.
func openRepository(ctx context.Context, cfg *config.Config) (*sqlstore.SQLRepository, error) {
	if err := ensureDatabaseDir(cfg.Database); err != nil {
		return nil, err
	}

	db, dialect, err := database.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	repo := sqlstore.New(db, dialect)
	if err := repo.Ping(ctx); err != nil {
		repo.Close()
		return nil, err
	}
	return repo, nil
}

// ensureDatabaseDir creates the parent directory of a SQLite database file.
func ensureDatabaseDir(db config.DatabaseConfig) error {
	dialect, ok := sqlstore.ParseDialect(db.Driver)
	if !ok || dialect != sqlstore.DialectSQLite {
		return nil
	}

	path := strings.TrimPrefix(db.DSN, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	return nil
}
