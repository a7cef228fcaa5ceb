// Package database provides SQLite-backed storage following the PowerDNS
// generic SQL schema.
//
// The package stores:
//   - Zones (the PowerDNS `domains` table)
//   - Records (the `records` table)
//   - RRset comments (the `comments` table)
//   - Zone ownership and zone-level comments (`zone_meta`)
//
// Schema management uses embedded golang-migrate migrations so a fresh
// database file is initialized on open and existing files upgrade in place.
// The store performs no DNS validation of its own; callers are expected to
// hand it normalized, validated rows.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DB wraps a SQLite database connection.
type DB struct {
	conn *sql.DB
}

// Open opens or creates a SQLite database at the given path and applies any
// pending schema migrations.
func Open(path string) (*DB, error) {
	// WAL mode for concurrent readers during zone mutations.
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(time.Hour)

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// BeginTx starts a transaction for atomic multi-table operations.
func (db *DB) BeginTx() (*sql.Tx, error) {
	return db.conn.Begin()
}

// Health checks database connectivity.
func (db *DB) Health(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}
