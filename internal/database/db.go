// Package database opens the store connection and manages schema migrations.
package database

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"timesheet/internal/repository/sqlstore"
)

// Open opens a connection pool for the given driver.
// SQLite connections are limited to one open connection, which keeps
// ":memory:" databases alive for the life of the pool and serializes writers,
// and have foreign keys enabled so ON DELETE CASCADE applies.
// sql.Open does not connect; the first query or Ping does.
func Open(driver, dsn string) (*sql.DB, sqlstore.Dialect, error) {
	dialect, ok := sqlstore.ParseDialect(driver)
	if !ok {
		return nil, "", fmt.Errorf("unsupported database driver %q", driver)
	}

	switch dialect {
	case sqlstore.DialectSQLite:
		db, err := sql.Open("sqlite", sqliteDSN(dsn))
		if err != nil {
			return nil, "", fmt.Errorf("failed to open database: %w", err)
		}
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, "", fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		return db, dialect, nil
	default:
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open database: %w", err)
		}
		return db, dialect, nil
	}
}

func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}
