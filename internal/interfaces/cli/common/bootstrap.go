package common

import (
	"fmt"

	"github.com/spf13/cobra"

	"sezzlegate/internal/infrastructure/config"
	"sezzlegate/internal/infrastructure/database"
	"sezzlegate/internal/shared/logger"
)

// Flags are the persistent flags every command shares.
type Flags struct {
	Env        string
	ConfigPath string
	Debug      bool
}

func (f *Flags) Register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&f.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&f.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.PersistentFlags().BoolVar(&f.Debug, "debug", false, "Enable debug logging")
}

// LoadConfig reads the configuration and initializes the global logger.
func LoadConfig(f *Flags) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(f.Env, f.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, f.Debug); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// InitDatabase loads the configuration and opens the global database handle.
// Callers close it with database.Close.
func InitDatabase(f *Flags) (*config.Config, logger.Interface, error) {
	cfg, log, err := LoadConfig(f)
	if err != nil {
		return nil, nil, err
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, log, nil
}
