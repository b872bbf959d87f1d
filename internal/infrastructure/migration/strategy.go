package migration

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"sezzlegate/internal/shared/logger"
)

const (
	StrategyGoose         = "goose"
	StrategyGolangMigrate = "golang_migrate"
	StrategyAutoMigrate   = "auto"
)

// ErrUnsupported is returned by strategies that cannot perform an operation.
var ErrUnsupported = errors.New("operation not supported by migration strategy")

// Strategy defines the interface for different migration strategies
type Strategy interface {
	Migrate(db *gorm.DB) error
	MigrateDown(db *gorm.DB, steps int) error
	Version(db *gorm.DB) (int64, error)
	GetName() string
}

// GolangMigrateStrategy implements migration using golang-migrate
type GolangMigrateStrategy struct {
	scripts fs.FS
	dir     string
	logger  logger.Interface
}

func NewGolangMigrateStrategy(scripts fs.FS, dir string, log logger.Interface) *GolangMigrateStrategy {
	return &GolangMigrateStrategy{
		scripts: scripts,
		dir:     dir,
		logger:  log.With("component", "migration.golang-migrate"),
	}
}

func (s *GolangMigrateStrategy) Migrate(db *gorm.DB) error {
	m, err := s.instance(db)
	if err != nil {
		return err
	}
	defer m.Close()

	currentVersion, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		s.logger.Warnw("database is in dirty state, please fix manually", "version", currentVersion)
		return fmt.Errorf("database is in dirty state at version %d", currentVersion)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get final migration version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)
	return nil
}

func (s *GolangMigrateStrategy) MigrateDown(db *gorm.DB, steps int) error {
	m, err := s.instance(db)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run down migrations: %w", err)
	}
	s.logger.Infow("down migration completed successfully", "steps", steps)
	return nil
}

func (s *GolangMigrateStrategy) Version(db *gorm.DB) (int64, error) {
	m, err := s.instance(db)
	if err != nil {
		return 0, err
	}
	defer m.Close()

	version, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	return int64(version), err
}

func (s *GolangMigrateStrategy) GetName() string {
	return StrategyGolangMigrate
}

func (s *GolangMigrateStrategy) instance(db *gorm.DB) (*migrate.Migrate, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	source, err := iofs.New(s.scripts, s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration scripts: %w", err)
	}

	driver, err := mysql.WithInstance(sqlDB, &mysql.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create MySQL driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "mysql", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

type GooseStrategy struct {
	scripts fs.FS
	dir     string
	logger  logger.Interface
}

func NewGooseStrategy(scripts fs.FS, dir string, log logger.Interface) *GooseStrategy {
	return &GooseStrategy{
		scripts: scripts,
		dir:     dir,
		logger:  log.With("component", "migration.goose"),
	}
}

// prepare points goose's package-level state at our scripts.
func (s *GooseStrategy) prepare() error {
	goose.SetBaseFS(s.scripts)
	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

func (s *GooseStrategy) Migrate(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return err
	}

	currentVersion, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	if err := goose.Up(sqlDB, s.dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)
	return nil
}

func (s *GooseStrategy) MigrateDown(db *gorm.DB, steps int) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return err
	}

	for i := 0; i < steps; i++ {
		if err := goose.Down(sqlDB, s.dir); err != nil {
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	}
	s.logger.Infow("down migration completed successfully", "steps", steps)
	return nil
}

func (s *GooseStrategy) Version(db *gorm.DB) (int64, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return 0, err
	}
	return goose.GetDBVersion(sqlDB)
}

// Status prints the applied and pending goose migrations.
func (s *GooseStrategy) Status(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return err
	}
	return goose.Status(sqlDB, s.dir)
}

func (s *GooseStrategy) GetName() string {
	return StrategyGoose
}

// AutoMigrateStrategy creates tables from the gorm models. Used with sqlite,
// where the MySQL scripts do not apply.
type AutoMigrateStrategy struct {
	models []interface{}
	logger logger.Interface
}

func NewAutoMigrateStrategy(models []interface{}, log logger.Interface) *AutoMigrateStrategy {
	return &AutoMigrateStrategy{
		models: models,
		logger: log.With("component", "migration.auto"),
	}
}

func (s *AutoMigrateStrategy) Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(s.models...); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}
	s.logger.Infow("auto-migration completed", "models", len(s.models))
	return nil
}

func (s *AutoMigrateStrategy) MigrateDown(*gorm.DB, int) error {
	return fmt.Errorf("down: %w", ErrUnsupported)
}

func (s *AutoMigrateStrategy) Version(*gorm.DB) (int64, error) {
	return 0, fmt.Errorf("version: %w", ErrUnsupported)
}

func (s *AutoMigrateStrategy) GetName() string {
	return StrategyAutoMigrate
}
