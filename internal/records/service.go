// Package records implements the zone record mutation pipeline: input
// validation, duplicate and CNAME-exclusivity checks, SOA serial
// maintenance, comment migration, audit logging, and best-effort DNSSEC
// rectification. All mutations within one zone are serialized.
package records

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/jroosing/zonekeeper/internal/comments"
	"github.com/jroosing/zonekeeper/internal/database"
	"github.com/jroosing/zonekeeper/internal/dnsname"
	"github.com/jroosing/zonekeeper/internal/validation"
)

// Rectifier re-establishes DNSSEC signing consistency after zone content
// changes. Implementations talk to a remote backend and may fail; such
// failures never roll back the committed record change.
type Rectifier interface {
	RectifyZone(ctx context.Context, zone string) error
}

// ConflictPolicy controls what happens when a record edit carries a stale
// SOA serial snapshot.
type ConflictPolicy string

const (
	// LastWriterWins applies the edit regardless of intervening changes.
	LastWriterWins ConflictPolicy = "last_writer_wins"
	// OnlyLatestVersion rejects edits built against a stale serial.
	OnlyLatestVersion ConflictPolicy = "only_latest_version"
)

// Service coordinates record mutations for zones.
type Service struct {
	db        *database.DB
	validator *validation.Validator
	comments  *comments.Synchronizer
	rectifier Rectifier
	policy    ConflictPolicy
	logger    *slog.Logger
	now       func() time.Time

	mu        sync.Mutex
	zoneLocks map[int64]*sync.Mutex
}

// NewService wires a record service. rectifier may be nil when DNSSEC is
// disabled.
func NewService(db *database.DB, validator *validation.Validator, rectifier Rectifier, policy ConflictPolicy, logger *slog.Logger) *Service {
	if policy == "" {
		policy = LastWriterWins
	}
	return &Service{
		db:        db,
		validator: validator,
		comments:  comments.NewSynchronizer(db),
		rectifier: rectifier,
		policy:    policy,
		logger:    logger,
		now:       time.Now,
		zoneLocks: make(map[int64]*sync.Mutex),
	}
}

// LockZone serializes mutations for one zone and returns the unlock
// function. Callers that orchestrate multi-step operations (forward plus
// reverse pairs, batch generation) take the lock once around the whole
// sequence.
func (s *Service) LockZone(zoneID int64) func() {
	s.mu.Lock()
	l, ok := s.zoneLocks[zoneID]
	if !ok {
		l = &sync.Mutex{}
		s.zoneLocks[zoneID] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// AddInput describes a record creation request. Name may be a relative
// label, "@" for the apex, or a full FQDN within the zone.
type AddInput struct {
	ZoneID  int64
	Name    string
	Type    string
	Content string
	TTL     string
	Prio    string
	Comment string

	Actor    string
	ClientIP string
}

// MutationResult reports a committed record change. Warning carries a
// non-fatal post-commit failure such as a DNSSEC rectify error.
type MutationResult struct {
	Record  *database.Record
	NoOp    bool
	Warning string
}

// Add validates and stores a new record, bumps the zone serial, attaches
// an optional RRset comment, and rectifies the zone.
func (s *Service) Add(ctx context.Context, in AddInput) (*MutationResult, error) {
	unlock := s.LockZone(in.ZoneID)
	defer unlock()
	return s.add(ctx, in)
}

// AddLocked is Add for callers already holding the zone lock.
func (s *Service) AddLocked(ctx context.Context, in AddInput) (*MutationResult, error) {
	return s.add(ctx, in)
}

func (s *Service) add(ctx context.Context, in AddInput) (*MutationResult, error) {
	zone, err := s.editableZone(ctx, in.ZoneID)
	if err != nil {
		return nil, err
	}

	norm, err := s.validator.Validate(in.Type, dnsname.RestoreZoneSuffix(in.Name, zone.Name), in.Content, in.TTL, in.Prio)
	if err != nil {
		return nil, err
	}

	exists, err := s.db.RecordExists(ctx, zone.ID, norm.Name, norm.Type, norm.Content)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &ConflictError{Reason: fmt.Sprintf("record %s %s %q already exists", norm.Name, norm.Type, norm.Content)}
	}
	if err := s.checkCNAMEExclusivity(ctx, zone.ID, norm.Name, norm.Type, 0); err != nil {
		return nil, err
	}

	record := database.Record{
		DomainID: zone.ID,
		Name:     norm.Name,
		Type:     norm.Type,
		Content:  norm.Content,
		TTL:      norm.TTL,
		Prio:     norm.Prio,
	}
	record.ID, err = s.db.InsertRecord(ctx, record)
	if err != nil {
		return nil, err
	}

	if norm.Type != validation.TypeSOA {
		if err := s.bumpSerial(ctx, zone.ID); err != nil {
			return nil, err
		}
	}
	if in.Comment != "" {
		if err := s.comments.Set(ctx, zone.ID, norm.Name, norm.Type, in.Actor, in.Comment); err != nil {
			return nil, err
		}
	}

	s.logger.Info("record created",
		"actor", in.Actor,
		"client_ip", in.ClientIP,
		"zone", zone.Name,
		"name", record.Name,
		"type", record.Type,
		"content", record.Content,
		"ttl", record.TTL,
		"prio", record.Prio)

	return &MutationResult{Record: &record, Warning: s.rectify(ctx, zone.Name)}, nil
}

// EditInput describes a record edit. SerialSnapshot, when non-empty, is
// the zone serial the caller's view was built from and enables
// concurrent-edit detection.
type EditInput struct {
	RecordID       int64
	Name           string
	Type           string
	Content        string
	TTL            string
	Prio           string
	Disabled       bool
	SerialSnapshot string

	Actor    string
	ClientIP string
}

// Edit validates and applies changes to an existing record. Edits that
// change nothing are detected and skipped without a serial bump or audit
// line.
func (s *Service) Edit(ctx context.Context, in EditInput) (*MutationResult, error) {
	current, err := s.db.GetRecord(ctx, in.RecordID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, &NotFoundError{Resource: "record", Key: strconv.FormatInt(in.RecordID, 10)}
	}
	if err != nil {
		return nil, err
	}

	unlock := s.LockZone(current.DomainID)
	defer unlock()

	zone, err := s.editableZone(ctx, current.DomainID)
	if err != nil {
		return nil, err
	}

	if err := s.checkSerialSnapshot(ctx, zone.ID, in.SerialSnapshot); err != nil {
		return nil, err
	}

	norm, err := s.validator.Validate(in.Type, dnsname.RestoreZoneSuffix(in.Name, zone.Name), in.Content, in.TTL, in.Prio)
	if err != nil {
		return nil, err
	}

	updated := database.Record{
		ID:       current.ID,
		DomainID: current.DomainID,
		Name:     norm.Name,
		Type:     norm.Type,
		Content:  norm.Content,
		TTL:      norm.TTL,
		Prio:     norm.Prio,
		Disabled: in.Disabled,
	}
	if updated == *current {
		return &MutationResult{Record: current, NoOp: true}, nil
	}

	if norm.Name != current.Name || norm.Type != current.Type || norm.Content != current.Content {
		exists, err := s.db.RecordExists(ctx, zone.ID, norm.Name, norm.Type, norm.Content)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &ConflictError{Reason: fmt.Sprintf("record %s %s %q already exists", norm.Name, norm.Type, norm.Content)}
		}
	}
	if err := s.checkCNAMEExclusivity(ctx, zone.ID, norm.Name, norm.Type, current.ID); err != nil {
		return nil, err
	}

	if err := s.db.UpdateRecord(ctx, updated); err != nil {
		return nil, err
	}
	if err := s.comments.RecordMoved(ctx, zone.ID, current.ID, current.Name, current.Type, norm.Name, norm.Type); err != nil {
		return nil, err
	}
	if norm.Type != validation.TypeSOA && current.Type != validation.TypeSOA {
		if err := s.bumpSerial(ctx, zone.ID); err != nil {
			return nil, err
		}
	}

	s.logger.Info("record updated",
		"actor", in.Actor,
		"client_ip", in.ClientIP,
		"zone", zone.Name,
		"record_id", current.ID,
		"before", fmt.Sprintf("%s %s %q ttl=%d prio=%d", current.Name, current.Type, current.Content, current.TTL, current.Prio),
		"after", fmt.Sprintf("%s %s %q ttl=%d prio=%d", updated.Name, updated.Type, updated.Content, updated.TTL, updated.Prio))

	return &MutationResult{Record: &updated, Warning: s.rectify(ctx, zone.Name)}, nil
}

// Delete removes a record, cleans up its RRset comment when it was the
// last member, bumps the zone serial, and rectifies the zone. The removed
// record is returned so callers can pair the deletion with reverse-record
// cleanup.
func (s *Service) Delete(ctx context.Context, recordID int64, actor, clientIP string) (*database.Record, string, error) {
	record, err := s.db.GetRecord(ctx, recordID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, "", &NotFoundError{Resource: "record", Key: strconv.FormatInt(recordID, 10)}
	}
	if err != nil {
		return nil, "", err
	}

	unlock := s.LockZone(record.DomainID)
	defer unlock()

	zone, err := s.editableZone(ctx, record.DomainID)
	if err != nil {
		return nil, "", err
	}

	if err := s.db.DeleteRecord(ctx, record.ID); err != nil {
		return nil, "", err
	}
	if err := s.comments.RecordDeleted(ctx, zone.ID, record.ID, record.Name, record.Type); err != nil {
		return nil, "", err
	}
	if record.Type != validation.TypeSOA {
		if err := s.bumpSerial(ctx, zone.ID); err != nil {
			return nil, "", err
		}
	}

	s.logger.Info("record deleted",
		"actor", actor,
		"client_ip", clientIP,
		"zone", zone.Name,
		"name", record.Name,
		"type", record.Type,
		"content", record.Content)

	return record, s.rectify(ctx, zone.Name), nil
}

// SetComment attaches, replaces, or (with empty text) removes the comment
// on an RRset and bumps the zone serial.
func (s *Service) SetComment(ctx context.Context, zoneID int64, name, rtype, actor, text string) error {
	unlock := s.LockZone(zoneID)
	defer unlock()

	zone, err := s.editableZone(ctx, zoneID)
	if err != nil {
		return err
	}
	name = dnsname.RestoreZoneSuffix(name, zone.Name)
	if err := s.comments.Set(ctx, zone.ID, name, rtype, actor, text); err != nil {
		return err
	}
	return s.bumpSerial(ctx, zone.ID)
}

// BumpSerial advances the zone's SOA serial. Exposed for callers that
// batch several raw mutations and bump once.
func (s *Service) BumpSerial(ctx context.Context, zoneID int64) error {
	unlock := s.LockZone(zoneID)
	defer unlock()
	return s.bumpSerial(ctx, zoneID)
}

func (s *Service) bumpSerial(ctx context.Context, zoneID int64) error {
	soa, err := s.db.SOARecord(ctx, zoneID)
	if errors.Is(err, database.ErrNotFound) {
		// Zones without an SOA (PowerDNS allows them transiently) have no
		// serial to maintain.
		return nil
	}
	if err != nil {
		return err
	}

	serial, err := Serial(soa.Content)
	if err != nil {
		return err
	}
	next := NextSerial(serial, s.now())
	if next == serial {
		return nil
	}
	content, err := WithSerial(soa.Content, next)
	if err != nil {
		return err
	}
	return s.db.UpdateSOAContent(ctx, zoneID, content)
}

func (s *Service) editableZone(ctx context.Context, zoneID int64) (*database.Zone, error) {
	zone, err := s.db.GetZone(ctx, zoneID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, &NotFoundError{Resource: "zone", Key: strconv.FormatInt(zoneID, 10)}
	}
	if err != nil {
		return nil, err
	}
	if zone.Type == database.ZoneKindSlave {
		return nil, &ConflictError{Reason: fmt.Sprintf("zone %s is a slave zone; its records are managed by the master %s", zone.Name, zone.Master)}
	}
	return zone, nil
}

func (s *Service) checkSerialSnapshot(ctx context.Context, zoneID int64, snapshot string) error {
	if snapshot == "" || s.policy == LastWriterWins {
		return nil
	}
	soa, err := s.db.SOARecord(ctx, zoneID)
	if errors.Is(err, database.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	serial, err := Serial(soa.Content)
	if err != nil {
		return err
	}
	if snapshot != strconv.FormatInt(serial, 10) {
		return &ConflictError{Reason: "zone was modified by another change; reload and retry"}
	}
	return nil
}

// checkCNAMEExclusivity enforces that a CNAME never shares its name with
// any other record.
func (s *Service) checkCNAMEExclusivity(ctx context.Context, zoneID int64, name, rtype string, excludeID int64) error {
	others, err := s.db.RecordsAtName(ctx, zoneID, name, excludeID)
	if err != nil {
		return err
	}
	for _, other := range others {
		if rtype == validation.TypeCNAME {
			return &ConflictError{Reason: fmt.Sprintf("CNAME %s cannot coexist with %s records of the same name", name, other.Type)}
		}
		if other.Type == validation.TypeCNAME {
			return &ConflictError{Reason: fmt.Sprintf("%s already holds a CNAME record", name)}
		}
	}
	return nil
}

func (s *Service) rectify(ctx context.Context, zoneName string) string {
	if s.rectifier == nil {
		return ""
	}
	if err := s.rectifier.RectifyZone(ctx, zoneName); err != nil {
		s.logger.Warn("DNSSEC rectify failed after record change", "zone", zoneName, "error", err)
		return fmt.Sprintf("record change saved, but DNSSEC rectify failed: %v", err)
	}
	return ""
}
