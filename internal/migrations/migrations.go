package migrations

import (
	"database/sql"
	"fmt"
)

func getAllMigrations() []Migration {
	return []Migration{
		{
			ID:          "000_initial_schema",
			Description: "Create notes table",
			Up:          migration000Up,
			Down:        migration000Down,
		},
		{
			ID:          "001_list_indexes",
			Description: "Index notes for the pinned/recency list order and category filter",
			Up:          migration001Up,
			Down:        migration001Down,
		},
		{
			ID:          "002_preferences",
			Description: "Create key/value preferences table",
			Up:          migration002Up,
			Down:        migration002Down,
		},
		// Add new migrations here in chronological order
	}
}

func migration000Up(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS notes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL DEFAULT '',
			body TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL,
			modified_at INTEGER NOT NULL,
			pinned INTEGER NOT NULL DEFAULT 0 CHECK (pinned IN (0, 1)),
			CHECK (modified_at >= created_at)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create notes table: %w", err)
	}
	return nil
}

func migration000Down(tx *sql.Tx) error {
	if _, err := tx.Exec("DROP TABLE IF EXISTS notes"); err != nil {
		return fmt.Errorf("failed to drop notes table: %w", err)
	}
	return nil
}

func migration001Up(tx *sql.Tx) error {
	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_notes_list_order ON notes(pinned DESC, modified_at DESC, id DESC)",
		"CREATE INDEX IF NOT EXISTS idx_notes_category ON notes(category)",
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

func migration001Down(tx *sql.Tx) error {
	for _, name := range []string{"idx_notes_list_order", "idx_notes_category"} {
		if _, err := tx.Exec("DROP INDEX IF EXISTS " + name); err != nil {
			return fmt.Errorf("failed to drop index %s: %w", name, err)
		}
	}
	return nil
}

func migration002Up(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT 'string',
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create preferences table: %w", err)
	}
	return nil
}

func migration002Down(tx *sql.Tx) error {
	if _, err := tx.Exec("DROP TABLE IF EXISTS preferences"); err != nil {
		return fmt.Errorf("failed to drop preferences table: %w", err)
	}
	return nil
}
