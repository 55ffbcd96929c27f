package cli

import (
	"context"
	"fmt"

	"timesheet/internal/database"
	"timesheet/internal/errors"
)

// MigrateCommand applies, rolls back or reports the schema migrations.
type MigrateCommand struct {
	app *App
}

// NewMigrateCommand creates a new migrate command handler
func NewMigrateCommand(app *App) *MigrateCommand {
	return &MigrateCommand{app: app}
}

// Execute runs "up", "down" or "version".
func (c *MigrateCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("args", args, "expected one of up, down or version")
	}

	m, err := database.NewMigrator(c.app.repo.DB(), c.app.repo.Dialect(), c.app.config.Database.DSN)
	if err != nil {
		return err
	}
	defer m.Close()

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil {
			return err
		}
	case "down":
		if err := m.Down(); err != nil {
			return err
		}
	case "version":
	default:
		return errors.NewInvalidInputError("action", args[0], "expected one of up, down or version")
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	fmt.Fprintf(c.app.out, "schema version %d", version)
	if dirty {
		fmt.Fprint(c.app.out, " (dirty)")
	}
	fmt.Fprintln(c.app.out)
	return nil
}
