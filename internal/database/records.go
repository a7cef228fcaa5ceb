package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Record is a row of the records table.
type Record struct {
	ID       int64
	DomainID int64
	Name     string
	Type     string
	Content  string
	TTL      int
	Prio     int
	Disabled bool
}

const recordColumns = "id, domain_id, name, type, content, ttl, prio, disabled"

// InsertRecord adds a record row and returns its ID.
func (db *DB) InsertRecord(ctx context.Context, r Record) (int64, error) {
	res, err := db.conn.ExecContext(ctx,
		"INSERT INTO records (domain_id, name, type, content, ttl, prio, disabled) VALUES (?, ?, ?, ?, ?, ?, ?)",
		r.DomainID, r.Name, r.Type, r.Content, r.TTL, r.Prio, boolToInt(r.Disabled))
	if err != nil {
		return 0, fmt.Errorf("failed to insert record %s %s: %w", r.Name, r.Type, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get record id: %w", err)
	}
	return id, nil
}

// UpdateRecord rewrites all mutable fields of a record row.
func (db *DB) UpdateRecord(ctx context.Context, r Record) error {
	res, err := db.conn.ExecContext(ctx,
		"UPDATE records SET name = ?, type = ?, content = ?, ttl = ?, prio = ?, disabled = ? WHERE id = ? AND domain_id = ?",
		r.Name, r.Type, r.Content, r.TTL, r.Prio, boolToInt(r.Disabled), r.ID, r.DomainID)
	if err != nil {
		return fmt.Errorf("failed to update record %d: %w", r.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRecord removes a record row by ID.
func (db *DB) DeleteRecord(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete record %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetRecord retrieves a record by ID.
func (db *DB) GetRecord(ctx context.Context, id int64) (*Record, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM records WHERE id = ?", id)
	return scanRecord(row)
}

// RecordsByZone returns all records of a zone, SOA first, then by name
// and type.
func (db *DB) RecordsByZone(ctx context.Context, zoneID int64) ([]Record, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT "+recordColumns+` FROM records WHERE domain_id = ?
		 ORDER BY CASE type WHEN 'SOA' THEN 0 ELSE 1 END, name, type, content`,
		zoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to query zone records: %w", err)
	}
	return collectRecords(rows)
}

// RRSet returns the records sharing a name and type within a zone.
func (db *DB) RRSet(ctx context.Context, zoneID int64, name, rtype string) ([]Record, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM records WHERE domain_id = ? AND name = ? AND type = ? ORDER BY content",
		zoneID, name, rtype)
	if err != nil {
		return nil, fmt.Errorf("failed to query rrset: %w", err)
	}
	return collectRecords(rows)
}

// RecordExists reports whether an identical record (same name, type and
// content) already exists in the zone.
func (db *DB) RecordExists(ctx context.Context, zoneID int64, name, rtype, content string) (bool, error) {
	var n int
	err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM records WHERE domain_id = ? AND name = ? AND type = ? AND content = ?",
		zoneID, name, rtype, content).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check record existence: %w", err)
	}
	return n > 0, nil
}

// HasSimilarRecords reports whether other records share the name and type,
// excluding the given record ID.
func (db *DB) HasSimilarRecords(ctx context.Context, zoneID int64, name, rtype string, excludeID int64) (bool, error) {
	var n int
	err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM records WHERE domain_id = ? AND name = ? AND type = ? AND id != ?",
		zoneID, name, rtype, excludeID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check for similar records: %w", err)
	}
	return n > 0, nil
}

// RecordsAtName returns all records with the given name in a zone,
// excluding the record with excludeID (0 excludes nothing). Used for
// CNAME exclusivity checks.
func (db *DB) RecordsAtName(ctx context.Context, zoneID int64, name string, excludeID int64) ([]Record, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM records WHERE domain_id = ? AND name = ? AND id != ?",
		zoneID, name, excludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records at name: %w", err)
	}
	return collectRecords(rows)
}

// SOARecord returns the zone's SOA record, or ErrNotFound when the zone
// has none.
func (db *DB) SOARecord(ctx context.Context, zoneID int64) (*Record, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM records WHERE domain_id = ? AND type = 'SOA'", zoneID)
	return scanRecord(row)
}

// UpdateSOAContent rewrites the content of the zone's SOA record.
func (db *DB) UpdateSOAContent(ctx context.Context, zoneID int64, content string) error {
	res, err := db.conn.ExecContext(ctx,
		"UPDATE records SET content = ? WHERE domain_id = ? AND type = 'SOA'",
		content, zoneID)
	if err != nil {
		return fmt.Errorf("failed to update soa content: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountZoneRecords returns the number of records in a zone.
func (db *DB) CountZoneRecords(ctx context.Context, zoneID int64) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM records WHERE domain_id = ?", zoneID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count zone records: %w", err)
	}
	return n, nil
}

func scanRecord(row *sql.Row) (*Record, error) {
	var r Record
	var disabled int
	err := row.Scan(&r.ID, &r.DomainID, &r.Name, &r.Type, &r.Content, &r.TTL, &r.Prio, &disabled)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan record: %w", err)
	}
	r.Disabled = disabled != 0
	return &r, nil
}

func collectRecords(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()
	var records []Record
	for rows.Next() {
		var r Record
		var disabled int
		if err := rows.Scan(&r.ID, &r.DomainID, &r.Name, &r.Type, &r.Content, &r.TTL, &r.Prio, &disabled); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		r.Disabled = disabled != 0
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}
	return records, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
