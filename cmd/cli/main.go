package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/brightpath-care/shiftmatch/cmd/cli/commands"
	"github.com/brightpath-care/shiftmatch/internal/config"
	"github.com/brightpath-care/shiftmatch/pkg/postgres"
	"github.com/brightpath-care/shiftmatch/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shiftmatch",
		Short: "Shiftmatch CLI - Match caregivers to home-care shifts",
		Long:  `A CLI tool for generating care shifts, matching caregivers to them, and tracking assignment lifecycles.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.Logger != nil {
					app.Logger.Sync()
				}
				if app.Database != nil {
					app.Database.Close()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Mirror debug logs to the console")
	rootCmd.MarkPersistentFlagRequired("env")

	// app is populated by PersistentPreRunE before any RunE fires
	app = &commands.AppContext{}
	rootCmd.AddCommand(commands.OptimizeCmd(app))
	rootCmd.AddCommand(commands.GenerateShiftsCmd(app))
	rootCmd.AddCommand(commands.ValidateAssignmentsCmd(app))
	rootCmd.AddCommand(commands.AnalyticsCmd(app))
	rootCmd.AddCommand(commands.ImportFeedsCmd(app))
	rootCmd.AddCommand(commands.ListCaregiversCmd(app))
	rootCmd.AddCommand(commands.ConfirmAssignmentCmd(app))
	rootCmd.AddCommand(commands.RejectAssignmentCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and database
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(env, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Logger.Info("Connecting to database")
	app.Database, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	app.Logger.Info("Running database migrations")
	if err := app.Database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Logger.Info("Database initialized successfully")

	return nil
}
