package migration

import (
	"fmt"

	"gorm.io/gorm"

	"sezzlegate/internal/infrastructure/persistence/migrations"
	"sezzlegate/internal/shared/config"
	"sezzlegate/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks the strategy from the database config. sqlite always uses
// AutoMigrate since the versioned scripts are MySQL.
func NewManager(cfg *config.DatabaseConfig, log logger.Interface) (*Manager, error) {
	strategy, err := NewStrategy(cfg, log)
	if err != nil {
		return nil, err
	}
	return NewManagerWithStrategy(strategy, log), nil
}

func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

func NewStrategy(cfg *config.DatabaseConfig, log logger.Interface) (Strategy, error) {
	if cfg.Driver == "sqlite" {
		return NewAutoMigrateStrategy(migrations.Models(), log), nil
	}

	switch cfg.MigrationStrategy {
	case "", StrategyGoose:
		return NewGooseStrategy(Scripts, gooseDir, log), nil
	case StrategyGolangMigrate:
		return NewGolangMigrateStrategy(Scripts, migrateDir, log), nil
	case StrategyAutoMigrate:
		return NewAutoMigrateStrategy(migrations.Models(), log), nil
	default:
		return nil, fmt.Errorf("unknown migration strategy %q", cfg.MigrationStrategy)
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) MigrateDown(db *gorm.DB, steps int) error {
	if steps < 1 {
		return fmt.Errorf("steps must be at least 1")
	}
	return m.strategy.MigrateDown(db, steps)
}

func (m *Manager) Version(db *gorm.DB) (int64, error) {
	return m.strategy.Version(db)
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

// GetStrategyInfo returns information about the current strategy
func (m *Manager) GetStrategyInfo() map[string]interface{} {
	return map[string]interface{}{
		"name":        m.strategy.GetName(),
		"description": getStrategyDescription(m.strategy.GetName()),
	}
}

func getStrategyDescription(strategyName string) string {
	switch strategyName {
	case StrategyAutoMigrate:
		return "GORM AutoMigrate - Automatic schema migration based on struct definitions"
	case StrategyGolangMigrate:
		return "golang-migrate - Version-controlled SQL migration scripts"
	case StrategyGoose:
		return "goose - Version-controlled SQL migration scripts"
	default:
		return "Unknown migration strategy"
	}
}
