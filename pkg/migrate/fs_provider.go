package migrate

import (
	"database/sql"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Migration files are named 001_migration_name.up.sql / 001_migration_name.down.sql
var migrationFileRegex = regexp.MustCompile(`^(\d+)_(.+)\.(up|down)\.sql$`)

// FSProvider loads SQLite migrations from an fs.FS, typically an embed.FS
type FSProvider struct {
	fsys           fs.FS
	dir            string
	migrationTable string
}

// NewFSProvider creates a migration provider reading dir within fsys
func NewFSProvider(fsys fs.FS, dir string, migrationTable string) *FSProvider {
	if migrationTable == "" {
		migrationTable = "schema_migrations"
	}
	return &FSProvider{
		fsys:           fsys,
		dir:            dir,
		migrationTable: migrationTable,
	}
}

// GetMigrations loads all migrations, sorted by version
func (p *FSProvider) GetMigrations() ([]Migration, error) {
	byVersion := make(map[int]*Migration)

	err := fs.WalkDir(p.fsys, p.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		matches := migrationFileRegex.FindStringSubmatch(d.Name())
		if matches == nil {
			return nil
		}

		version, err := strconv.Atoi(matches[1])
		if err != nil {
			return fmt.Errorf("invalid version number in file %s: %w", d.Name(), err)
		}

		content, err := fs.ReadFile(p.fsys, path)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", path, err)
		}

		if byVersion[version] == nil {
			byVersion[version] = &Migration{
				Version: version,
				Name:    strings.ReplaceAll(matches[2], "_", " "),
			}
		}
		if matches[3] == "up" {
			byVersion[version].Up = string(content)
		} else {
			byVersion[version].Down = string(content)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory %s: %w", p.dir, err)
	}

	migrations := make([]Migration, 0, len(byVersion))
	for _, migration := range byVersion {
		migrations = append(migrations, *migration)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// CreateMigrationTable creates the migration tracking table
func (p *FSProvider) CreateMigrationTable(db *sql.DB) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`, p.migrationTable)

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migration table: %w", err)
	}

	return nil
}

// GetCurrentVersion returns the highest applied migration version
func (p *FSProvider) GetCurrentVersion(db *sql.DB) (int, error) {
	query := fmt.Sprintf("SELECT COALESCE(MAX(version), 0) FROM %s", p.migrationTable)

	var version int
	if err := db.QueryRow(query).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}

	return version, nil
}

// SetVersion records version as the current schema version. Rolling back
// removes the records above it.
func (p *FSProvider) SetVersion(db DB, version int) error {
	del := fmt.Sprintf("DELETE FROM %s WHERE version > ?", p.migrationTable)
	if _, err := db.Exec(del, version); err != nil {
		return fmt.Errorf("failed to set version: %w", err)
	}

	if version == 0 {
		return nil
	}

	ins := fmt.Sprintf(`
		INSERT OR REPLACE INTO %s (version, applied_at)
		VALUES (?, CURRENT_TIMESTAMP)
	`, p.migrationTable)
	if _, err := db.Exec(ins, version); err != nil {
		return fmt.Errorf("failed to set version: %w", err)
	}

	return nil
}
