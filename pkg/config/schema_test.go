package config

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestSchemaMigrator(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "schema.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	m := NewSchemaMigrator(db, nil)

	status, err := m.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.CurrentVersion != 0 || status.LatestVersion != 2 || len(status.Pending) != 2 {
		t.Fatalf("fresh database status = %+v", status)
	}

	if err := m.MigrateUp(); err != nil {
		t.Fatalf("MigrateUp: %v", err)
	}
	if status, _ = m.Status(); !status.UpToDate() || status.CurrentVersion != 2 {
		t.Errorf("status after MigrateUp = %+v", status)
	}
	if _, err := db.Exec("SELECT position FROM channels"); err != nil {
		t.Errorf("channels.position missing: %v", err)
	}

	if err := m.MigrateDown(1); err != nil {
		t.Fatalf("MigrateDown: %v", err)
	}
	if _, err := db.Exec("SELECT position FROM channels"); err == nil {
		t.Error("channels.position still present after rollback")
	}
	if status, _ = m.Status(); status.CurrentVersion != 1 || len(status.Pending) != 1 {
		t.Errorf("status after rollback = %+v", status)
	}

	// a provider opened on a partially migrated database finishes the job
	db.Close()
	p, err := NewSQLiteProvider(dbPath, nil)
	if err != nil {
		t.Fatalf("NewSQLiteProvider: %v", err)
	}
	defer p.Close()

	if err := p.AddChannel(&ChannelData{Name: "inlet", Width: 50, Height: 3, Length: 500, DragCoefficient: 0.002, TidalVelocityAmplitude: 0.4}); err != nil {
		t.Errorf("AddChannel after re-migration: %v", err)
	}
}
