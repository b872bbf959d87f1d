package migration

import "embed"

// Scripts holds the versioned MySQL schema. scripts/goose is read by goose,
// scripts/migrate by golang-migrate.
//
//go:embed scripts/goose/*.sql scripts/migrate/*.sql
var Scripts embed.FS

const (
	gooseDir   = "scripts/goose"
	migrateDir = "scripts/migrate"
)
