package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"
	"github.com/streed/notepad/internal/config"
	"github.com/streed/notepad/internal/constants"
	"github.com/streed/notepad/internal/logger"
	"github.com/streed/notepad/internal/migrations"
	"github.com/streed/notepad/internal/query"
)

// DriverName is the go-sqlite3 driver with the search fold function
// registered on every connection.
const DriverName = "sqlite3_notepad"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc(query.FoldFunc, query.Fold, true)
		},
	})
}

type DB struct {
	conn *sql.DB
	path string
}

func New(cfg *config.Config) (*DB, error) {
	return Open(cfg.GetDatabasePath())
}

// Open opens (creating if needed) the database at path and applies pending
// migrations.
func Open(path string) (*DB, error) {
	dbDir := filepath.Dir(path)
	if err := os.MkdirAll(dbDir, constants.DirMode); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	logger.Debug("Database path: %s", path)

	conn, err := sql.Open(DriverName, path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, path: path}
	if err := db.initialize(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return db, nil
}

func (db *DB) initialize() error {
	if err := db.conn.Ping(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	return migrations.NewMigrationRunner(db.conn).RunMigrations()
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Conn() *sql.DB {
	return db.conn
}

func (db *DB) Path() string {
	return db.path
}
