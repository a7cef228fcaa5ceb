package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Zone kinds as stored in the domains table.
const (
	ZoneKindMaster = "MASTER"
	ZoneKindNative = "NATIVE"
	ZoneKindSlave  = "SLAVE"
)

// Zone is a row of the domains table.
type Zone struct {
	ID      int64
	Name    string
	Master  string
	Type    string
	Account string
}

// ZoneSummary is a zone with its record count, for listings.
type ZoneSummary struct {
	Zone
	RecordCount int
}

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// CreateZone inserts a domains row and its zone_meta companion, returning
// the new zone ID.
func (db *DB) CreateZone(ctx context.Context, z Zone) (int64, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO domains (name, master, type, account) VALUES (?, ?, ?, ?)",
		z.Name, nullable(z.Master), z.Type, nullable(z.Account))
	if err != nil {
		return 0, fmt.Errorf("failed to insert zone %s: %w", z.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get zone id: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO zone_meta (domain_id, owner, comment) VALUES (?, ?, '')",
		id, nullable(z.Account)); err != nil {
		return 0, fmt.Errorf("failed to insert zone meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit zone creation: %w", err)
	}
	return id, nil
}

// GetZone retrieves a zone by ID.
func (db *DB) GetZone(ctx context.Context, id int64) (*Zone, error) {
	return db.scanZone(db.conn.QueryRowContext(ctx,
		"SELECT id, name, master, type, account FROM domains WHERE id = ?", id))
}

// GetZoneByName retrieves a zone by exact name (case-insensitive).
func (db *DB) GetZoneByName(ctx context.Context, name string) (*Zone, error) {
	return db.scanZone(db.conn.QueryRowContext(ctx,
		"SELECT id, name, master, type, account FROM domains WHERE name = ?", name))
}

func (db *DB) scanZone(row *sql.Row) (*Zone, error) {
	var z Zone
	var master, account sql.NullString
	err := row.Scan(&z.ID, &z.Name, &master, &z.Type, &account)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan zone: %w", err)
	}
	z.Master = master.String
	z.Account = account.String
	return &z, nil
}

// ListZones returns all zones with their record counts, ordered by name.
func (db *DB) ListZones(ctx context.Context) ([]ZoneSummary, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT d.id, d.name, d.master, d.type, d.account, COUNT(r.id)
		FROM domains d
		LEFT JOIN records r ON r.domain_id = d.id
		GROUP BY d.id
		ORDER BY d.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query zones: %w", err)
	}
	defer rows.Close()

	var zones []ZoneSummary
	for rows.Next() {
		var z ZoneSummary
		var master, account sql.NullString
		if err := rows.Scan(&z.ID, &z.Name, &master, &z.Type, &account, &z.RecordCount); err != nil {
			return nil, fmt.Errorf("failed to scan zone: %w", err)
		}
		z.Master = master.String
		z.Account = account.String
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating zones: %w", err)
	}
	return zones, nil
}

// DeleteZone removes a zone, cascading to its records, RRset comments,
// and zone metadata.
func (db *DB) DeleteZone(ctx context.Context, id int64) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		"DELETE FROM records WHERE domain_id = ?",
		"DELETE FROM comments WHERE domain_id = ?",
		"DELETE FROM zone_meta WHERE domain_id = ?",
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("failed to cascade zone delete: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM domains WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete zone: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit zone delete: %w", err)
	}
	return nil
}

// BestMatchingZone finds the zone whose name is the longest suffix of the
// given record name. Returns ErrNotFound when no zone covers the name.
func (db *DB) BestMatchingZone(ctx context.Context, name string) (*Zone, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT id, name, master, type, account FROM domains ORDER BY LENGTH(name) DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query zones: %w", err)
	}
	defer rows.Close()

	name = strings.ToLower(strings.TrimSuffix(name, "."))
	for rows.Next() {
		var z Zone
		var master, account sql.NullString
		if err := rows.Scan(&z.ID, &z.Name, &master, &z.Type, &account); err != nil {
			return nil, fmt.Errorf("failed to scan zone: %w", err)
		}
		zoneName := strings.ToLower(z.Name)
		if name == zoneName || strings.HasSuffix(name, "."+zoneName) {
			z.Master = master.String
			z.Account = account.String
			return &z, nil
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating zones: %w", err)
	}
	return nil, ErrNotFound
}

// BestMatchingReverseZone finds the longest arpa-tree zone covering a
// reverse record name.
func (db *DB) BestMatchingReverseZone(ctx context.Context, name string) (*Zone, error) {
	z, err := db.BestMatchingZone(ctx, name)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(strings.ToLower(z.Name), ".arpa") {
		return nil, ErrNotFound
	}
	return z, nil
}

// ZoneComment returns the free-text zone-level comment.
func (db *DB) ZoneComment(ctx context.Context, id int64) (string, error) {
	var comment string
	err := db.conn.QueryRowContext(ctx,
		"SELECT comment FROM zone_meta WHERE domain_id = ?", id).Scan(&comment)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get zone comment: %w", err)
	}
	return comment, nil
}

// SetZoneComment stores the zone-level comment, creating the metadata row
// when missing.
func (db *DB) SetZoneComment(ctx context.Context, id int64, comment string) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO zone_meta (domain_id, comment) VALUES (?, ?)
		ON CONFLICT(domain_id) DO UPDATE SET comment = excluded.comment`,
		id, comment)
	if err != nil {
		return fmt.Errorf("failed to set zone comment: %w", err)
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
