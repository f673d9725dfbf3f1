package config

import (
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider opens the database at dbPath and brings its schema up to
// date. A nil logger discards migration output.
func NewSQLiteProvider(dbPath string, logger *zap.SugaredLogger) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	if err := NewSchemaMigrator(db, logger).MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	config := &ConfigData{}

	channels, err := s.GetChannels()
	if err != nil {
		return nil, fmt.Errorf("failed to load channels: %w", err)
	}
	config.Channels = channels

	constituents, err := s.GetConstituents()
	if err != nil {
		return nil, fmt.Errorf("failed to load constituents: %w", err)
	}
	config.Constituents = constituents

	series, err := s.GetSeries()
	if err != nil {
		return nil, fmt.Errorf("failed to load series: %w", err)
	}
	config.Series = *series

	return config, nil
}

// GetChannels returns channel configurations in the order they were stored
func (s *SQLiteProvider) GetChannels() ([]ChannelData, error) {
	query := `
		SELECT name, width, height, length, tidal_averaged_flow,
		       drag_coefficient, tidal_velocity_amplitude, diffusion_prefactor
		FROM channels
		ORDER BY position, name
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query channels: %w", err)
	}
	defer rows.Close()

	channels := []ChannelData{}
	for rows.Next() {
		var c ChannelData
		var prefactor sql.NullFloat64

		err := rows.Scan(&c.Name, &c.Width, &c.Height, &c.Length, &c.TidalAveragedFlow,
			&c.DragCoefficient, &c.TidalVelocityAmplitude, &prefactor)
		if err != nil {
			return nil, fmt.Errorf("failed to scan channel row: %w", err)
		}

		if prefactor.Valid {
			v := prefactor.Float64
			c.DiffusionPrefactor = &v
		}

		channels = append(channels, c)
	}

	return channels, rows.Err()
}

// GetConstituents returns tidal constituents in their configured order
func (s *SQLiteProvider) GetConstituents() ([]ConstituentData, error) {
	rows, err := s.db.Query(`SELECT name, period_h, amplitude, phase FROM constituents ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query constituents: %w", err)
	}
	defer rows.Close()

	constituents := []ConstituentData{}
	for rows.Next() {
		var c ConstituentData
		if err := rows.Scan(&c.Name, &c.PeriodH, &c.Amplitude, &c.Phase); err != nil {
			return nil, fmt.Errorf("failed to scan constituent row: %w", err)
		}
		constituents = append(constituents, c)
	}

	return constituents, rows.Err()
}

// GetSeries returns the time series configuration, or the defaults when none
// has been stored
func (s *SQLiteProvider) GetSeries() (*SeriesData, error) {
	var series SeriesData
	err := s.db.QueryRow(`SELECT start_seconds, step_seconds, count FROM series WHERE id = 1`).
		Scan(&series.StartSeconds, &series.StepSeconds, &series.Count)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to query series: %w", err)
	}

	series = series.withDefaults()
	return &series, nil
}

// IsReadOnly returns false since SQLite supports writes
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveConfig replaces the stored configuration with configData in a single
// transaction
func (s *SQLiteProvider) SaveConfig(configData *ConfigData) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"channels", "constituents", "series"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, c := range configData.Channels {
		if err := insertChannel(tx, &c); err != nil {
			return err
		}
	}

	for i, c := range configData.Constituents {
		_, err := tx.Exec(`INSERT INTO constituents (position, name, period_h, amplitude, phase) VALUES (?, ?, ?, ?, ?)`,
			i, c.Name, c.PeriodH, c.Amplitude, c.Phase)
		if err != nil {
			return fmt.Errorf("failed to insert constituent %q: %w", c.Name, err)
		}
	}

	series := configData.Series.withDefaults()
	_, err = tx.Exec(`INSERT INTO series (id, start_seconds, step_seconds, count) VALUES (1, ?, ?, ?)`,
		series.StartSeconds, series.StepSeconds, series.Count)
	if err != nil {
		return fmt.Errorf("failed to insert series: %w", err)
	}

	return tx.Commit()
}

// AddChannel stores a single channel after the existing ones
func (s *SQLiteProvider) AddChannel(c *ChannelData) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertChannel(tx, c); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteChannel removes the named channel
func (s *SQLiteProvider) DeleteChannel(name string) error {
	result, err := s.db.Exec(`DELETE FROM channels WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete channel %q: %w", name, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("channel %q not found", name)
	}
	return nil
}

// insertChannel appends c behind the highest stored position
func insertChannel(tx *sql.Tx, c *ChannelData) error {
	var prefactor sql.NullFloat64
	if c.DiffusionPrefactor != nil {
		prefactor = sql.NullFloat64{Float64: *c.DiffusionPrefactor, Valid: true}
	}

	_, err := tx.Exec(`
		INSERT INTO channels (position, name, width, height, length, tidal_averaged_flow,
		                      drag_coefficient, tidal_velocity_amplitude, diffusion_prefactor)
		VALUES ((SELECT COALESCE(MAX(position) + 1, 0) FROM channels), ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Width, c.Height, c.Length, c.TidalAveragedFlow,
		c.DragCoefficient, c.TidalVelocityAmplitude, prefactor)
	if err != nil {
		return fmt.Errorf("failed to insert channel %q: %w", c.Name, err)
	}
	return nil
}
