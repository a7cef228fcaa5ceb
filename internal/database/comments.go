package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Comment is an RRset-level annotation. One comment row exists per
// (domain_id, name, type) tuple.
type Comment struct {
	ID         int64
	DomainID   int64
	Name       string
	Type       string
	ModifiedAt time.Time
	Account    string
	Comment    string
}

// FindComment returns the comment attached to an RRset, or ErrNotFound.
func (db *DB) FindComment(ctx context.Context, zoneID int64, name, rtype string) (*Comment, error) {
	var c Comment
	var modified int64
	var account sql.NullString
	err := db.conn.QueryRowContext(ctx,
		"SELECT id, domain_id, name, type, modified_at, account, comment FROM comments WHERE domain_id = ? AND name = ? AND type = ?",
		zoneID, name, rtype).Scan(&c.ID, &c.DomainID, &c.Name, &c.Type, &modified, &account, &c.Comment)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	c.ModifiedAt = time.Unix(modified, 0)
	c.Account = account.String
	return &c, nil
}

// UpsertComment creates or replaces the comment on an RRset. An empty
// comment text removes the row instead.
func (db *DB) UpsertComment(ctx context.Context, zoneID int64, name, rtype, account, text string) error {
	if text == "" {
		return db.DeleteComment(ctx, zoneID, name, rtype)
	}
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO comments (domain_id, name, type, modified_at, account, comment)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(domain_id, name, type) DO UPDATE SET
			modified_at = excluded.modified_at,
			account = excluded.account,
			comment = excluded.comment`,
		zoneID, name, rtype, time.Now().Unix(), nullable(account), text)
	if err != nil {
		return fmt.Errorf("failed to upsert comment: %w", err)
	}
	return nil
}

// DeleteComment removes the comment on an RRset. Missing rows are not an
// error.
func (db *DB) DeleteComment(ctx context.Context, zoneID int64, name, rtype string) error {
	_, err := db.conn.ExecContext(ctx,
		"DELETE FROM comments WHERE domain_id = ? AND name = ? AND type = ?",
		zoneID, name, rtype)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// DeleteZoneComments removes every RRset comment in a zone.
func (db *DB) DeleteZoneComments(ctx context.Context, zoneID int64) error {
	_, err := db.conn.ExecContext(ctx, "DELETE FROM comments WHERE domain_id = ?", zoneID)
	if err != nil {
		return fmt.Errorf("failed to delete zone comments: %w", err)
	}
	return nil
}
