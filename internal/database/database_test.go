package database

import (
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	if err := db.Migrate(); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}
}

func TestIsFirstRun(t *testing.T) {
	db := newTestDB(t)

	firstRun, err := db.IsFirstRun()
	if err != nil {
		t.Fatalf("failed to check first run: %v", err)
	}
	if !firstRun {
		t.Error("expected first run on empty database")
	}

	if _, err := db.CreateUser(&UserRecord{Username: "alice", Password: "x", Role: "student"}); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	firstRun, err = db.IsFirstRun()
	if err != nil {
		t.Fatalf("failed to check first run: %v", err)
	}
	if firstRun {
		t.Error("expected first run to be over once a user exists")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	db := newTestDB(t)

	value, err := db.GetSetting("log.level")
	if err != nil {
		t.Fatalf("failed to get missing setting: %v", err)
	}
	if value != "" {
		t.Errorf("expected empty value for missing setting, got %q", value)
	}

	if err := db.SetSetting("log.level", "debug"); err != nil {
		t.Fatalf("failed to set setting: %v", err)
	}
	if err := db.SetSetting("log.level", "trace"); err != nil {
		t.Fatalf("failed to overwrite setting: %v", err)
	}

	value, err = db.GetSetting("log.level")
	if err != nil {
		t.Fatalf("failed to get setting: %v", err)
	}
	if value != "trace" {
		t.Errorf("expected trace, got %q", value)
	}
}
