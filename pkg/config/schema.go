package config

import (
	"database/sql"
	"embed"

	"go.uber.org/zap"

	"github.com/chrissnell/tidalchannel/pkg/migrate"
)

// MigrationTable tracks the applied schema versions of a config database
const MigrationTable = "schema_migrations"

//go:embed migrations/*.sql
var migrationFS embed.FS

// NewSchemaMigrator returns a migrator for the config database schema. The
// migrations are compiled into the binary.
func NewSchemaMigrator(db *sql.DB, logger *zap.SugaredLogger) *migrate.Migrator {
	return migrate.NewMigrator(db, migrate.NewFSProvider(migrationFS, "migrations", MigrationTable), logger)
}
