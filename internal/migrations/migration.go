package migrations

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/streed/notepad/internal/logger"
)

// Migration is one schema step, identified by an ordered ID such as
// "001_list_indexes".
type Migration struct {
	ID          string
	Description string
	Up          func(tx *sql.Tx) error
	Down        func(tx *sql.Tx) error // optional
}

// MigrationStatus reports whether a migration has been applied
type MigrationStatus struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Applied     bool   `json:"applied"`
}

// MigrationRunner applies migrations and tracks them in schema_migrations
type MigrationRunner struct {
	db         *sql.DB
	migrations []Migration
}

func NewMigrationRunner(db *sql.DB) *MigrationRunner {
	all := getAllMigrations()
	sort.Slice(all, func(i, j int) bool {
		return all[i].ID < all[j].ID
	})
	return &MigrationRunner{
		db:         db,
		migrations: all,
	}
}

func (mr *MigrationRunner) createMigrationsTable() error {
	_, err := mr.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id TEXT PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func (mr *MigrationRunner) getAppliedMigrations() (map[string]bool, error) {
	rows, err := mr.db.Query("SELECT id FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan migration id: %w", err)
		}
		applied[id] = true
	}

	return applied, rows.Err()
}

// RunMigrations applies every pending migration, each in its own transaction.
func (mr *MigrationRunner) RunMigrations() error {
	if err := mr.createMigrationsTable(); err != nil {
		return err
	}

	applied, err := mr.getAppliedMigrations()
	if err != nil {
		return err
	}

	pendingCount := 0
	for _, migration := range mr.migrations {
		if applied[migration.ID] {
			continue
		}

		logger.Info("Running migration: %s - %s", migration.ID, migration.Description)
		if err := mr.inTx(migration.ID, func(tx *sql.Tx) error {
			if err := migration.Up(tx); err != nil {
				return err
			}
			_, err := tx.Exec(
				"INSERT INTO schema_migrations (id, description, applied_at) VALUES (?, ?, ?)",
				migration.ID, migration.Description, time.Now().UTC(),
			)
			return err
		}); err != nil {
			return err
		}
		pendingCount++
	}

	if pendingCount == 0 {
		logger.Debug("No pending migrations found - database is up to date")
	} else {
		logger.Info("Successfully applied %d migrations", pendingCount)
	}

	return nil
}

// GetMigrationStatus returns the status of all known migrations in order
func (mr *MigrationRunner) GetMigrationStatus() ([]MigrationStatus, error) {
	if err := mr.createMigrationsTable(); err != nil {
		return nil, err
	}
	applied, err := mr.getAppliedMigrations()
	if err != nil {
		return nil, err
	}

	status := make([]MigrationStatus, 0, len(mr.migrations))
	for _, migration := range mr.migrations {
		status = append(status, MigrationStatus{
			ID:          migration.ID,
			Description: migration.Description,
			Applied:     applied[migration.ID],
		})
	}

	return status, nil
}

// RollbackMigration reverts one applied migration that has a Down step.
func (mr *MigrationRunner) RollbackMigration(migrationID string) error {
	var target *Migration
	for i := range mr.migrations {
		if mr.migrations[i].ID == migrationID {
			target = &mr.migrations[i]
			break
		}
	}

	if target == nil {
		return fmt.Errorf("migration %s not found", migrationID)
	}
	if target.Down == nil {
		return fmt.Errorf("migration %s does not support rollback", migrationID)
	}

	applied, err := mr.getAppliedMigrations()
	if err != nil {
		return err
	}
	if !applied[migrationID] {
		return fmt.Errorf("migration %s is not applied", migrationID)
	}

	logger.Info("Rolling back migration: %s - %s", target.ID, target.Description)
	return mr.inTx(migrationID, func(tx *sql.Tx) error {
		if err := target.Down(tx); err != nil {
			return err
		}
		_, err := tx.Exec("DELETE FROM schema_migrations WHERE id = ?", migrationID)
		return err
	})
}

func (mr *MigrationRunner) inTx(id string, fn func(tx *sql.Tx) error) error {
	tx, err := mr.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction for migration %s: %w", id, err)
	}

	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			logger.Error("Failed to rollback transaction: %v", rollbackErr)
		}
		return fmt.Errorf("migration %s failed: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", id, err)
	}
	return nil
}
