package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"sezzlegate/internal/infrastructure/database"
	"sezzlegate/internal/infrastructure/migration"
	"sezzlegate/internal/interfaces/cli/common"
	httpRouter "sezzlegate/internal/interfaces/http"
	"sezzlegate/internal/shared/config"
	"sezzlegate/internal/shared/logger"
)

const shutdownTimeout = 30 * time.Second

var (
	flags       common.Flags
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the sezzlegate HTTP server serving the storefront checkout and backend order APIs.`,
		RunE:  run,
	}

	flags.Register(cmd)
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup (not recommended for production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		flags.Env = envVar
	}

	cfg, log, err := common.InitDatabase(&flags)
	if err != nil {
		return err
	}
	defer database.Close()

	cfg.Server.Mode = mapEnvToGinMode(cfg.Server.Mode)
	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	log.Infow("starting server",
		"environment", flags.Env,
		"version", httpRouter.Version,
		"database", cfg.Database.Driver,
		"auto_migrate", autoMigrate)

	if err := handleMigrations(&cfg.Database, log); err != nil {
		return fmt.Errorf("migration handling failed: %w", err)
	}

	container, err := httpRouter.NewContainer(database.Get(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer func() {
		if err := container.Shutdown(); err != nil {
			log.Errorw("failed to release resources", "error", err)
		}
	}()
	container.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      container.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infow("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

// handleMigrations applies migrations when asked to. sqlite databases are
// always migrated since they are created on demand.
func handleMigrations(cfg *config.DatabaseConfig, log logger.Interface) error {
	manager, err := migration.NewManager(cfg, log)
	if err != nil {
		return err
	}

	if autoMigrate || cfg.Driver == database.DriverSQLite {
		return manager.Migrate(database.Get())
	}

	version, err := manager.Version(database.Get())
	if err != nil {
		log.Warnw("failed to check migration status", "error", err)
		return nil
	}
	log.Infow("current migration version", "version", version, "strategy", manager.GetStrategy().GetName())
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return gin.ReleaseMode
	case "test", "testing":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
