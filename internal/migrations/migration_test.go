package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to check table %s: %v", name, err)
	}
	return count == 1
}

func TestRunMigrations(t *testing.T) {
	db := setupTestDB(t)
	runner := NewMigrationRunner(db)

	if err := runner.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	for _, table := range []string{"notes", "preferences", "schema_migrations"} {
		if !tableExists(t, db, table) {
			t.Errorf("Expected table %s to exist", table)
		}
	}

	// Second run is a no-op
	if err := runner.RunMigrations(); err != nil {
		t.Fatalf("Second RunMigrations failed: %v", err)
	}

	status, err := runner.GetMigrationStatus()
	if err != nil {
		t.Fatalf("GetMigrationStatus failed: %v", err)
	}
	if len(status) != len(getAllMigrations()) {
		t.Fatalf("Expected %d migrations, got %d", len(getAllMigrations()), len(status))
	}
	for i, s := range status {
		if !s.Applied {
			t.Errorf("Migration %s should be applied", s.ID)
		}
		if i > 0 && status[i-1].ID >= s.ID {
			t.Errorf("Migrations out of order: %s before %s", status[i-1].ID, s.ID)
		}
	}
}

func TestNotesTableRejectsBadRows(t *testing.T) {
	db := setupTestDB(t)
	if err := NewMigrationRunner(db).RunMigrations(); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	tests := []struct {
		name     string
		created  int64
		modified int64
		pinned   int
	}{
		{"pinned out of range", 1, 1, 2},
		{"modified before created", 10, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.Exec(
				"INSERT INTO notes (title, created_at, modified_at, pinned) VALUES ('x', ?, ?, ?)",
				tt.created, tt.modified, tt.pinned,
			)
			if err == nil {
				t.Error("Expected constraint violation")
			}
		})
	}
}

func TestRollbackMigration(t *testing.T) {
	db := setupTestDB(t)
	runner := NewMigrationRunner(db)
	if err := runner.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	if err := runner.RollbackMigration("002_preferences"); err != nil {
		t.Fatalf("RollbackMigration failed: %v", err)
	}
	if tableExists(t, db, "preferences") {
		t.Error("preferences table should be dropped")
	}

	if err := runner.RollbackMigration("002_preferences"); err == nil {
		t.Error("Expected error rolling back a migration that is not applied")
	}
	if err := runner.RollbackMigration("999_missing"); err == nil {
		t.Error("Expected error for unknown migration")
	}

	// Re-running restores it
	if err := runner.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations after rollback failed: %v", err)
	}
	if !tableExists(t, db, "preferences") {
		t.Error("preferences table should be recreated")
	}
}
