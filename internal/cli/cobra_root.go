package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"timesheet/internal/config"
	"timesheet/internal/logging"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	config *config.Config
	out    io.Writer
}

// NewRootCommand creates the root cobra command with global flags.
// Command output goes to out.
func NewRootCommand(out io.Writer) *RootCommand {
	if out == nil {
		out = os.Stdout
	}
	root := &RootCommand{out: out}

	root.cmd = &cobra.Command{
		Use:   "timesheet",
		Short: "A multi-user time tracking server",
		Long: `timesheet records work sessions against projects and reports them
grouped by local calendar day.

EXAMPLES:
  timesheet serve                          # Run the JSON API
  timesheet migrate up                     # Apply schema migrations
  timesheet report month ada 2024-02       # Print a month report for user ada
  timesheet report project ada Engine      # Print the history of one project

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > YAML file > defaults

    TIMESHEET_CONFIG                       YAML configuration file
    TIMESHEET_DB_DRIVER                    sqlite or postgres (default: sqlite)
    TIMESHEET_DB_DSN                       Database DSN (default: ~/.timesheet/timesheet.db)
    TIMESHEET_ADDR                         Listen address (default: :8080)
    TIMESHEET_DEFAULT_TIME_ZONE            Time zone for new accounts (default: UTC)
    TIMESHEET_DEBUG                        Enable debug logging`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig()
		},
	}
	root.cmd.SetOut(out)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs replaces os.Args for the next Execute.
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "YAML configuration file (overrides TIMESHEET_CONFIG)")
	flags.String("db-driver", "", "Database driver (overrides TIMESHEET_DB_DRIVER)")
	flags.String("db-dsn", "", "Database DSN (overrides TIMESHEET_DB_DSN)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides TIMESHEET_DB_QUERY_TIMEOUT)")
	flags.String("addr", "", "Listen address (overrides TIMESHEET_ADDR)")
	flags.String("default-time-zone", "", "Time zone for new accounts (overrides TIMESHEET_DEFAULT_TIME_ZONE)")
	flags.Int("bcrypt-cost", 0, "Password hashing cost (overrides TIMESHEET_BCRYPT_COST)")
	flags.Bool("debug", false, "Enable debug logging (overrides TIMESHEET_DEBUG)")
}

// loadConfig builds the configuration and sets up logging before any command runs.
func (r *RootCommand) loadConfig() error {
	flags := r.cmd.PersistentFlags()

	loader := config.NewLoader()
	if flags.Changed("config") {
		path, _ := flags.GetString("config")
		loader = loader.WithFile(path)
	}

	overrides := &config.ConfigOverrides{}
	if flags.Changed("db-driver") {
		v, _ := flags.GetString("db-driver")
		overrides.DBDriver = &v
	}
	if flags.Changed("db-dsn") {
		v, _ := flags.GetString("db-dsn")
		overrides.DBDSN = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		overrides.DBQueryTimeout = &v
	}
	if flags.Changed("addr") {
		v, _ := flags.GetString("addr")
		overrides.Addr = &v
	}
	if flags.Changed("default-time-zone") {
		v, _ := flags.GetString("default-time-zone")
		overrides.DefaultTimeZone = &v
	}
	if flags.Changed("bcrypt-cost") {
		v, _ := flags.GetInt("bcrypt-cost")
		overrides.BcryptCost = &v
	}
	if flags.Changed("debug") {
		v, _ := flags.GetBool("debug")
		overrides.Debug = &v
	}

	cfg, err := loader.LoadWithOverrides(overrides)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	r.config = cfg

	logging.SetupDefault(os.Stderr, cfg.Application.Debug)
	return nil
}

// withApp opens the application for the duration of run.
func (r *RootCommand) withApp(ctx context.Context, migrate bool, run func(app *App) error) error {
	open := OpenApp
	if !migrate {
		open = OpenAppWithoutMigrations
	}

	app, err := open(ctx, r.config, r.out)
	if err != nil {
		return NewErrorHandler().Handle("open database", err)
	}
	defer app.Close()

	return run(app)
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON API server",
		Long:  "Run the JSON API server until interrupted. Pending migrations are applied first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd.Context(), true, func(app *App) error {
				return NewServeCommand(app).Execute(cmd.Context(), args)
			})
		},
	}

	migrateCmd := &cobra.Command{
		Use:       "migrate [up|down|version]",
		Short:     "Manage the database schema",
		Long:      "Apply all pending migrations, roll every migration back, or print the schema version.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down", "version"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd.Context(), false, func(app *App) error {
				return NewErrorHandler().Handle("migrate", NewMigrateCommand(app).Execute(cmd.Context(), args))
			})
		},
	}

	reportCmd := &cobra.Command{
		Use:   "report [day|month|project|projects] [username] [argument]",
		Short: "Print a report for one user",
		Long: `Print a user's sessions grouped by local calendar day.

Examples:
  timesheet report day ada                 # Today in ada's time zone
  timesheet report day ada 2024-02-01      # One day
  timesheet report month ada               # The current month
  timesheet report month ada 2024-02       # One month
  timesheet report project ada Engine      # One project's history
  timesheet report projects ada            # Project totals in ada's preferred order`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd.Context(), true, func(app *App) error {
				return NewErrorHandler().Handle("build report", NewReportCommand(app).Execute(cmd.Context(), args))
			})
		},
	}

	healthcheckCmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "Probe a running server",
		Long:  "Request /health from the server at the configured listen address and fail unless it answers 200.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewHealthcheckCommand(r.config.Server.Addr).Execute(cmd.Context(), args)
		},
	}

	r.cmd.AddCommand(
		serveCmd,
		migrateCmd,
		reportCmd,
		healthcheckCmd,
	)
}
