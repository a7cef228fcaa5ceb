// Package zones implements zone lifecycle: creation with generated SOA
// and NS records, deletion with cascade, listing, and zone-level
// comments.
package zones

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/jroosing/zonekeeper/internal/config"
	"github.com/jroosing/zonekeeper/internal/database"
	"github.com/jroosing/zonekeeper/internal/dnsname"
	"github.com/jroosing/zonekeeper/internal/records"
	"github.com/jroosing/zonekeeper/internal/validation"
)

// Service manages zone lifecycle on top of the record store.
type Service struct {
	db     *database.DB
	dns    config.DNSConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires a zone service with the configured zone defaults.
func NewService(db *database.DB, dns config.DNSConfig, logger *slog.Logger) *Service {
	return &Service{db: db, dns: dns, logger: logger, now: time.Now}
}

// CreateInput describes a zone creation request.
type CreateInput struct {
	Name string
	// Kind is MASTER, NATIVE, or SLAVE.
	Kind string
	// Master is the transfer source address, required for SLAVE zones.
	Master  string
	Account string

	Actor    string
	ClientIP string
}

// Create adds a zone. MASTER and NATIVE zones get a generated SOA record
// (serial YYYYMMDD00) and NS records from the configured nameservers;
// SLAVE zones store only the master address and receive their content via
// zone transfer.
func (s *Service) Create(ctx context.Context, in CreateInput) (*database.Zone, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, &validation.Error{Field: "name", Message: "zone name must not be blank"}
	}
	ascii, err := dnsname.ToPunycode(name)
	if err != nil {
		return nil, &validation.Error{Field: "name", Message: err.Error()}
	}
	ascii = strings.ToLower(strings.TrimSuffix(ascii, "."))
	if !dnsname.IsValid(ascii) {
		return nil, &validation.Error{Field: "name", Message: fmt.Sprintf("%q is not a valid zone name", name)}
	}

	kind := strings.ToUpper(strings.TrimSpace(in.Kind))
	switch kind {
	case database.ZoneKindMaster, database.ZoneKindNative:
		if in.Master != "" {
			return nil, &validation.Error{Field: "master", Message: "only slave zones carry a master address"}
		}
	case database.ZoneKindSlave:
		if net.ParseIP(in.Master) == nil {
			return nil, &validation.Error{Field: "master", Message: fmt.Sprintf("%q is not a valid master address", in.Master)}
		}
	default:
		return nil, &validation.Error{Field: "type", Message: fmt.Sprintf("zone type must be MASTER, NATIVE or SLAVE, got %q", in.Kind)}
	}

	if _, err := s.db.GetZoneByName(ctx, ascii); err == nil {
		return nil, &records.ConflictError{Reason: fmt.Sprintf("zone %s already exists", ascii)}
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	zone := database.Zone{Name: ascii, Type: kind, Master: in.Master, Account: in.Account}
	zone.ID, err = s.db.CreateZone(ctx, zone)
	if err != nil {
		return nil, err
	}

	if kind != database.ZoneKindSlave {
		if err := s.seedZoneRecords(ctx, &zone); err != nil {
			return nil, err
		}
	}

	s.logger.Info("zone created",
		"actor", in.Actor,
		"client_ip", in.ClientIP,
		"zone", zone.Name,
		"type", zone.Type)
	return &zone, nil
}

// seedZoneRecords writes the initial SOA and NS records for a freshly
// created authoritative zone.
func (s *Service) seedZoneRecords(ctx context.Context, zone *database.Zone) error {
	now := s.now()
	serial := (int64(now.Year())*10000 + int64(now.Month())*100 + int64(now.Day())) * 100

	soa := fmt.Sprintf("%s %s %d %d %d %d %d",
		strings.TrimSuffix(s.dns.NS1, "."),
		strings.TrimSuffix(s.dns.Hostmaster, "."),
		serial,
		s.dns.SOARefresh, s.dns.SOARetry, s.dns.SOAExpire, s.dns.SOAMinimum)

	if _, err := s.db.InsertRecord(ctx, database.Record{
		DomainID: zone.ID,
		Name:     zone.Name,
		Type:     validation.TypeSOA,
		Content:  soa,
		TTL:      s.dns.TTL,
	}); err != nil {
		return fmt.Errorf("failed to seed SOA record for %s: %w", zone.Name, err)
	}

	for _, ns := range []string{s.dns.NS1, s.dns.NS2} {
		if ns == "" {
			continue
		}
		if _, err := s.db.InsertRecord(ctx, database.Record{
			DomainID: zone.ID,
			Name:     zone.Name,
			Type:     validation.TypeNS,
			Content:  dnsname.Fqdn(ns),
			TTL:      s.dns.TTL,
		}); err != nil {
			return fmt.Errorf("failed to seed NS record for %s: %w", zone.Name, err)
		}
	}
	return nil
}

// Get returns a zone by ID.
func (s *Service) Get(ctx context.Context, id int64) (*database.Zone, error) {
	zone, err := s.db.GetZone(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, &records.NotFoundError{Resource: "zone", Key: strconv.FormatInt(id, 10)}
	}
	return zone, err
}

// List returns all zones with record counts.
func (s *Service) List(ctx context.Context) ([]database.ZoneSummary, error) {
	return s.db.ListZones(ctx)
}

// Delete removes a zone and everything in it.
func (s *Service) Delete(ctx context.Context, id int64, actor, clientIP string) error {
	zone, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.DeleteZone(ctx, id); err != nil {
		return err
	}
	s.logger.Info("zone deleted",
		"actor", actor,
		"client_ip", clientIP,
		"zone", zone.Name)
	return nil
}

// Comment returns the zone-level comment.
func (s *Service) Comment(ctx context.Context, id int64) (string, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return "", err
	}
	return s.db.ZoneComment(ctx, id)
}

// SetComment stores the zone-level comment.
func (s *Service) SetComment(ctx context.Context, id int64, comment, actor, clientIP string) error {
	zone, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.SetZoneComment(ctx, id, comment); err != nil {
		return err
	}
	s.logger.Info("zone comment updated",
		"actor", actor,
		"client_ip", clientIP,
		"zone", zone.Name)
	return nil
}
