package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"serverless-crud-api/internal/config"
	"serverless-crud-api/internal/database"
	"serverless-crud-api/internal/dataclient"
	"serverless-crud-api/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var verbose bool
	rootCmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the users and products schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// setup loads configuration and a logger honouring --verbose
	setup := func() (*config.Config, *logrus.Logger, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		if verbose {
			cfg.Log.Level = "debug"
		}
		logger := logging.New(cfg.Log)
		logger.WithFields(cfg.Database.LogFields()).Info("Starting migration tool")
		return cfg, logger, nil
	}

	withManager := func(run func(*database.MigrationManager) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			db, err := database.OpenSQL(cfg.Database.Driver, cfg.Database.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := pingContext(cmd.Context(), db); err != nil {
				return err
			}
			return run(database.NewMigrationManager(db, cfg.Database.Driver, logger))
		}
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: withManager(func(m *database.MigrationManager) error {
				return m.RunMigrations()
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: withManager(func(m *database.MigrationManager) error {
				return m.RollbackMigration()
			}),
		},
		&cobra.Command{
			Use:   "force VERSION",
			Short: "Mark VERSION as applied and clear the dirty flag",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				version, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q: %w", args[0], err)
				}
				return withManager(func(m *database.MigrationManager) error {
					return m.ForceVersion(version)
				})(cmd, args)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the current migration version",
			RunE: withManager(func(m *database.MigrationManager) error {
				status, err := m.GetMigrationStatus()
				if err != nil {
					return fmt.Errorf("failed to get migration status: %w", err)
				}

				fmt.Printf("Migration Status:\n")
				fmt.Printf("  Version: %d\n", status.Version)
				fmt.Printf("  Applied: %t\n", status.Applied)
				fmt.Printf("  Dirty: %t\n", status.Dirty)
				fmt.Printf("  Timestamp: %s\n", status.Timestamp.Format("2006-01-02 15:04:05"))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Check that the expected tables exist",
			RunE: withManager(func(m *database.MigrationManager) error {
				if err := m.ValidateSchema(); err != nil {
					return fmt.Errorf("schema validation failed: %w", err)
				}
				fmt.Println("Schema validation passed successfully")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "init",
			Short: "Create both tables concurrently without version tracking",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, logger, err := setup()
				if err != nil {
					return err
				}

				db, err := dataclient.Open(cmd.Context(), cfg.Database.ToOptions(logger))
				if err != nil {
					return err
				}
				defer db.Close()

				if err := database.NewInitializer(db, logger).Initialize(cmd.Context()); err != nil {
					return err
				}
				fmt.Println("Database tables initialized successfully")
				return nil
			},
		},
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.WithError(err).Fatal("Migration tool failed")
	}
}

func pingContext(ctx context.Context, db *sql.DB) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	return nil
}
