// Package sqlite provides a SQLite-backed content store for mapsrc sources.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases shared across queries.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, opts)
}

// createSchema creates the database tables if they don't exist.
//
// Timestamps are stored as RFC3339 text in UTC so they compare correctly as
// strings. A NULL publish_down means the item never expires.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS extensions (
			name TEXT PRIMARY KEY,
			enabled INTEGER NOT NULL DEFAULT 1
		);

		CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY,
			parent_id INTEGER NOT NULL DEFAULT 0,
			lft INTEGER NOT NULL DEFAULT 0,
			extension TEXT NOT NULL,
			alias TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			published INTEGER NOT NULL DEFAULT 1,
			access INTEGER NOT NULL DEFAULT 1,
			modified_time TEXT
		);

		CREATE TABLE IF NOT EXISTS content (
			id INTEGER PRIMARY KEY,
			catid INTEGER NOT NULL REFERENCES categories(id),
			alias TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			state INTEGER NOT NULL DEFAULT 1,
			access INTEGER NOT NULL DEFAULT 1,
			language TEXT NOT NULL DEFAULT '*',
			modified TEXT NOT NULL,
			publish_up TEXT NOT NULL,
			publish_down TEXT,
			metakey TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_categories_extension ON categories(extension);
		CREATE INDEX IF NOT EXISTS idx_content_catid ON content(catid);
	`

	_, err := db.db.Exec(schema)
	return err
}
