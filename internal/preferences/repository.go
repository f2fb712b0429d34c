// Package preferences stores user settings in the preferences table.
package preferences

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/streed/notepad/internal/constants"
	"github.com/streed/notepad/internal/logger"
)

// Value types recorded alongside each preference.
const (
	TypeString = "string"
	TypeBool   = "bool"
)

// Preference is one key/value row.
type Preference struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Type      string    `json:"type"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository reads and writes preferences. The table is created by the
// 002_preferences migration.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Set stores a preference value
func (r *Repository) Set(key, value, valueType string) error {
	_, err := r.db.Exec(`
		INSERT INTO preferences (key, value, type, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			type = excluded.type,
			updated_at = excluded.updated_at
	`, key, value, valueType)
	if err != nil {
		return fmt.Errorf("failed to set preference %s: %w", key, err)
	}
	return nil
}

// Get returns the preference, or nil when it has never been set.
func (r *Repository) Get(key string) (*Preference, error) {
	row := r.db.QueryRow("SELECT key, value, type, updated_at FROM preferences WHERE key = ?", key)

	var pref Preference
	err := row.Scan(&pref.Key, &pref.Value, &pref.Type, &pref.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preference %s: %w", key, err)
	}
	return &pref, nil
}

func (r *Repository) GetAll() ([]*Preference, error) {
	rows, err := r.db.Query("SELECT key, value, type, updated_at FROM preferences ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Debug("Failed to close rows: %v", err)
		}
	}()

	var prefs []*Preference
	for rows.Next() {
		var pref Preference
		if err := rows.Scan(&pref.Key, &pref.Value, &pref.Type, &pref.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		prefs = append(prefs, &pref)
	}
	return prefs, rows.Err()
}

func (r *Repository) Delete(key string) error {
	if _, err := r.db.Exec("DELETE FROM preferences WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete preference %s: %w", key, err)
	}
	return nil
}

func (r *Repository) SetString(key, value string) error {
	return r.Set(key, value, TypeString)
}

// GetString returns defaultValue when the key is unset or unreadable.
func (r *Repository) GetString(key, defaultValue string) string {
	pref, err := r.Get(key)
	if err != nil {
		logger.Warn("Using default for preference %s: %v", key, err)
		return defaultValue
	}
	if pref == nil {
		return defaultValue
	}
	return pref.Value
}

func (r *Repository) SetBool(key string, value bool) error {
	valueStr := constants.BoolFalse
	if value {
		valueStr = constants.BoolTrue
	}
	return r.Set(key, valueStr, TypeBool)
}

func (r *Repository) GetBool(key string, defaultValue bool) bool {
	pref, err := r.Get(key)
	if err != nil {
		logger.Warn("Using default for preference %s: %v", key, err)
		return defaultValue
	}
	if pref == nil {
		return defaultValue
	}
	return pref.Value == constants.BoolTrue
}
