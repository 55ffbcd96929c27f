package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"timesheet/internal/repository/sqlstore"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Migrator applies the embedded schema migrations.
type Migrator struct {
	m *migrate.Migrate
	// owned is false when m wraps a caller's *sql.DB, which Close must leave open.
	owned bool
}

// NewMigrator builds a Migrator for the given dialect.
// SQLite migrates through the already open pool so in-memory databases are
// migrated in place; PostgreSQL opens its own connection from dsn.
func NewMigrator(db *sql.DB, dialect sqlstore.Dialect, dsn string) (*Migrator, error) {
	source, err := iofs.New(migrationsFS, "migrations/"+string(dialect))
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	switch dialect {
	case sqlstore.DialectSQLite:
		driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to create migration driver: %w", err)
		}
		m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
		if err != nil {
			return nil, fmt.Errorf("failed to create migrator: %w", err)
		}
		return &Migrator{m: m}, nil
	case sqlstore.DialectPostgres:
		m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to create migrator: %w", err)
		}
		return &Migrator{m: m, owned: true}, nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
}

// Up applies all pending migrations. Being up to date is not an error.
func (m *Migrator) Up() error {
	if err := m.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Down rolls back every migration.
func (m *Migrator) Down() error {
	if err := m.m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	return nil
}

// Version returns the current schema version; 0 means no migration applied.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// Close releases the migrator's own connection.
func (m *Migrator) Close() error {
	if !m.owned {
		return nil
	}
	srcErr, dbErr := m.m.Close()
	if srcErr != nil {
		return srcErr
	}
	return dbErr
}

// RunMigrations applies all pending migrations.
func RunMigrations(db *sql.DB, dialect sqlstore.Dialect, dsn string) error {
	m, err := NewMigrator(db, dialect, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	return m.Up()
}
