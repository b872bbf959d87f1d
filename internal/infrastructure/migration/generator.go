package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/pressly/goose/v3"

	"sezzlegate/internal/shared/logger"
)

var migrationNamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// Generator handles creation of new migration files
type Generator struct {
	scriptsPath string
	logger      logger.Interface
	now         func() time.Time
}

// NewGenerator writes below scriptsPath, which holds the goose and migrate dirs.
func NewGenerator(scriptsPath string, log logger.Interface) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      log.With("component", "migration.generator"),
		now:         time.Now,
	}
}

// Create adds an empty migration for the given strategy.
func (g *Generator) Create(strategy, name string) ([]string, error) {
	if !migrationNamePattern.MatchString(name) {
		return nil, fmt.Errorf("migration name must be snake_case: %q", name)
	}

	switch strategy {
	case "", StrategyGoose:
		return g.createGoose(name)
	case StrategyGolangMigrate:
		return g.createMigratePair(name)
	default:
		return nil, fmt.Errorf("create: %w", ErrUnsupported)
	}
}

func (g *Generator) createGoose(name string) ([]string, error) {
	dir := filepath.Join(g.scriptsPath, "goose")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scripts directory: %w", err)
	}

	goose.SetSequential(true)
	if err := goose.Create(nil, dir, name, "sql"); err != nil {
		return nil, fmt.Errorf("failed to create migration: %w", err)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "*_"+name+".sql"))
	g.logger.Infow("migration created", "name", name, "files", matches)
	return matches, nil
}

// createMigratePair writes golang-migrate up and down files.
func (g *Generator) createMigratePair(name string) ([]string, error) {
	dir := filepath.Join(g.scriptsPath, "migrate")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scripts directory: %w", err)
	}

	timestamp := g.now().Format("20060102150405")
	upPath := filepath.Join(dir, fmt.Sprintf("%s_%s.up.sql", timestamp, name))
	downPath := filepath.Join(dir, fmt.Sprintf("%s_%s.down.sql", timestamp, name))

	created := g.now().Format("2006-01-02 15:04:05")
	if err := os.WriteFile(upPath, []byte(fmt.Sprintf("-- Migration: %s\n-- Created: %s\n\n", name, created)), 0o644); err != nil {
		return nil, fmt.Errorf("failed to create up migration file: %w", err)
	}
	if err := os.WriteFile(downPath, []byte(fmt.Sprintf("-- Rollback Migration: %s\n-- Created: %s\n\n", name, created)), 0o644); err != nil {
		return nil, fmt.Errorf("failed to create down migration file: %w", err)
	}

	g.logger.Infow("migration files created successfully",
		"up_file", upPath,
		"down_file", downPath)
	return []string{upPath, downPath}, nil
}
