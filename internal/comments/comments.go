// Package comments keeps RRset annotations consistent with the records
// they describe. Comments are keyed by (zone, name, type), so they are
// shared by every record of an RRset and must follow records across
// renames and survive partial deletions.
package comments

import (
	"context"
	"errors"
	"fmt"

	"github.com/jroosing/zonekeeper/internal/database"
)

// Synchronizer applies comment-consistency rules around record mutations.
type Synchronizer struct {
	db *database.DB
}

// NewSynchronizer returns a Synchronizer backed by the given database.
func NewSynchronizer(db *database.DB) *Synchronizer {
	return &Synchronizer{db: db}
}

// Find returns the comment attached to an RRset, or nil when none exists.
func (s *Synchronizer) Find(ctx context.Context, zoneID int64, name, rtype string) (*database.Comment, error) {
	c, err := s.db.FindComment(ctx, zoneID, name, rtype)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Set creates, replaces, or (with empty text) removes an RRset comment.
func (s *Synchronizer) Set(ctx context.Context, zoneID int64, name, rtype, account, text string) error {
	return s.db.UpsertComment(ctx, zoneID, name, rtype, account, text)
}

// RecordMoved migrates an RRset comment after one record's name or type
// changed. The comment is copied to the new RRset key; the old key is
// removed only when the moved record was the last one under it.
func (s *Synchronizer) RecordMoved(ctx context.Context, zoneID, recordID int64, oldName, oldType, newName, newType string) error {
	if oldName == newName && oldType == newType {
		return nil
	}

	existing, err := s.Find(ctx, zoneID, oldName, oldType)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}

	if err := s.db.UpsertComment(ctx, zoneID, newName, newType, existing.Account, existing.Comment); err != nil {
		return fmt.Errorf("failed to copy comment to renamed rrset: %w", err)
	}

	siblings, err := s.db.HasSimilarRecords(ctx, zoneID, oldName, oldType, recordID)
	if err != nil {
		return err
	}
	if !siblings {
		return s.db.DeleteComment(ctx, zoneID, oldName, oldType)
	}
	return nil
}

// RecordDeleted removes the RRset comment when the deleted record was the
// last one sharing its name and type. Deleting one record of a larger
// RRset leaves the comment in place.
func (s *Synchronizer) RecordDeleted(ctx context.Context, zoneID, recordID int64, name, rtype string) error {
	siblings, err := s.db.HasSimilarRecords(ctx, zoneID, name, rtype, recordID)
	if err != nil {
		return err
	}
	if siblings {
		return nil
	}
	return s.db.DeleteComment(ctx, zoneID, name, rtype)
}
