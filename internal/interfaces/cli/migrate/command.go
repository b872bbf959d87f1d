package migrate

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"sezzlegate/internal/infrastructure/database"
	"sezzlegate/internal/infrastructure/migration"
	"sezzlegate/internal/interfaces/cli/common"
	"sezzlegate/internal/shared/logger"
)

const defaultScriptsPath = "./internal/infrastructure/migration/scripts"

var (
	flags       common.Flags
	name        string
	steps       int
	scriptsPath string
	strategy    string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	flags.Register(cmd)

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create new migration files with the specified name.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	cmd.Flags().StringVar(&scriptsPath, "scripts", defaultScriptsPath, "Directory holding the goose and migrate script folders")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Script flavour to create (goose, golang_migrate); defaults to the configured strategy")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func initManager() (*migration.Manager, logger.Interface, error) {
	cfg, log, err := common.InitDatabase(&flags)
	if err != nil {
		return nil, nil, err
	}

	manager, err := migration.NewManager(&cfg.Database, log)
	if err != nil {
		database.Close()
		return nil, nil, err
	}
	return manager, log, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	manager, log, err := initManager()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running up migrations", "environment", flags.Env)
	return manager.Migrate(database.Get())
}

func runDown(cmd *cobra.Command, args []string) error {
	manager, log, err := initManager()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running down migrations", "environment", flags.Env, "steps", steps)

	if err := manager.MigrateDown(database.Get(), steps); err != nil {
		log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	manager, _, err := initManager()
	if err != nil {
		return err
	}
	defer database.Close()

	out := cmd.OutOrStdout()
	info := manager.GetStrategyInfo()
	fmt.Fprintf(out, "Strategy: %s (%s)\n", info["name"], info["description"])

	if goose, ok := manager.GetStrategy().(*migration.GooseStrategy); ok {
		return goose.Status(database.Get())
	}

	version, err := manager.Version(database.Get())
	if errors.Is(err, migration.ErrUnsupported) {
		fmt.Fprintln(out, "Version: not tracked")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}
	fmt.Fprintf(out, "Version: %d\n", version)
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, log, err := common.LoadConfig(&flags)
	if err != nil {
		return err
	}

	if strategy == "" {
		strategy = cfg.Database.MigrationStrategy
	}

	absPath, err := filepath.Abs(scriptsPath)
	if err != nil {
		return fmt.Errorf("failed to get scripts path: %w", err)
	}

	files, err := migration.NewGenerator(absPath, log).Create(strategy, name)
	if err != nil {
		return err
	}

	for _, f := range files {
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", f)
	}
	return nil
}
