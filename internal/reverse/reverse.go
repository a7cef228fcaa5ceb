// Package reverse maintains the pairing between forward A/AAAA records
// and their PTR counterparts in the arpa tree. Reverse zones are never
// created implicitly; when no zone covers an address the operation
// reports why instead of failing hard, so forward-record creation can
// proceed with a warning.
package reverse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/jroosing/zonekeeper/internal/database"
	"github.com/jroosing/zonekeeper/internal/dnsname"
	"github.com/jroosing/zonekeeper/internal/records"
	"github.com/jroosing/zonekeeper/internal/validation"
)

// Creator derives and maintains PTR records for forward records.
type Creator struct {
	db     *database.DB
	svc    *records.Service
	logger *slog.Logger
}

// NewCreator wires a Creator on top of the record service.
func NewCreator(db *database.DB, svc *records.Service, logger *slog.Logger) *Creator {
	return &Creator{db: db, svc: svc, logger: logger}
}

// Outcome reports a reverse-record operation that can soft-fail. OK is
// false when the operation could not apply (typically: no covering
// reverse zone); Message explains why.
type Outcome struct {
	OK      bool
	Message string
	Record  *database.Record
	Warning string
}

// CreateInput describes a PTR creation derived from a forward record.
type CreateInput struct {
	// ForwardName is the normalized FQDN of the A/AAAA record.
	ForwardName string
	// Type is the forward record's type, A or AAAA.
	Type string
	// Content is the forward record's IP address.
	Content string
	TTL     string
	Prio    string
	Comment string

	Actor    string
	ClientIP string
}

// Create upserts the PTR record for a forward record. When a PTR already
// exists at the derived owner name it is repointed at the new target
// rather than duplicated.
func (c *Creator) Create(ctx context.Context, in CreateInput) (*Outcome, error) {
	if in.Type != validation.TypeA && in.Type != validation.TypeAAAA {
		return nil, &validation.Error{Field: "type", Message: fmt.Sprintf("reverse records can only be derived from A or AAAA records, not %s", in.Type)}
	}

	ptrName, err := dnsname.ReverseName(in.Content)
	if err != nil {
		return nil, &validation.Error{Field: "content", Message: err.Error()}
	}

	zone, err := c.db.BestMatchingReverseZone(ctx, ptrName)
	if errors.Is(err, database.ErrNotFound) {
		return &Outcome{
			OK:      false,
			Message: fmt.Sprintf("no reverse zone covers %s; create the zone before requesting PTR records", ptrName),
		}, nil
	}
	if err != nil {
		return nil, err
	}

	target := dnsname.Fqdn(in.ForwardName)

	existing, err := c.db.RRSet(ctx, zone.ID, ptrName, validation.TypePTR)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		if existing[0].Content == target {
			return &Outcome{OK: true, Message: "PTR record already up to date", Record: &existing[0]}, nil
		}
		res, err := c.svc.Edit(ctx, records.EditInput{
			RecordID: existing[0].ID,
			Name:     ptrName,
			Type:     validation.TypePTR,
			Content:  target,
			TTL:      in.TTL,
			Prio:     in.Prio,
			Actor:    in.Actor,
			ClientIP: in.ClientIP,
		})
		if err != nil {
			return nil, err
		}
		return &Outcome{OK: true, Record: res.Record, Warning: res.Warning}, nil
	}

	res, err := c.svc.Add(ctx, records.AddInput{
		ZoneID:   zone.ID,
		Name:     ptrName,
		Type:     validation.TypePTR,
		Content:  target,
		TTL:      in.TTL,
		Prio:     in.Prio,
		Comment:  in.Comment,
		Actor:    in.Actor,
		ClientIP: in.ClientIP,
	})
	if err != nil {
		return nil, err
	}
	return &Outcome{OK: true, Record: res.Record, Warning: res.Warning}, nil
}

// CreateForward creates the A/AAAA record paired with a new PTR: the
// forward record named by the PTR's target, pointing at the address the
// PTR covers, in the best-matching forward zone. A missing forward zone
// soft-fails the same way a missing reverse zone does in Create.
func (c *Creator) CreateForward(ctx context.Context, ptrName, ptrTarget, ttl, comment, actor, clientIP string) (*Outcome, error) {
	ip, err := dnsname.ParseReverseName(ptrName)
	if err != nil {
		return nil, &validation.Error{Field: "name", Message: err.Error()}
	}
	rtype := validation.TypeA
	if parsed := net.ParseIP(ip); parsed != nil && parsed.To4() == nil {
		rtype = validation.TypeAAAA
	}

	forwardName := trimDot(dnsname.Fqdn(ptrTarget))
	zone, err := c.db.BestMatchingZone(ctx, forwardName)
	if errors.Is(err, database.ErrNotFound) {
		return &Outcome{
			OK:      false,
			Message: fmt.Sprintf("no forward zone covers %s; create the zone before requesting forward records", forwardName),
		}, nil
	}
	if err != nil {
		return nil, err
	}

	exists, err := c.db.RecordExists(ctx, zone.ID, forwardName, rtype, ip)
	if err != nil {
		return nil, err
	}
	if exists {
		return &Outcome{OK: true, Message: "forward record already up to date"}, nil
	}

	res, err := c.svc.Add(ctx, records.AddInput{
		ZoneID:   zone.ID,
		Name:     forwardName,
		Type:     rtype,
		Content:  ip,
		TTL:      ttl,
		Comment:  comment,
		Actor:    actor,
		ClientIP: clientIP,
	})
	if err != nil {
		return nil, err
	}
	return &Outcome{OK: true, Record: res.Record, Warning: res.Warning}, nil
}

// Delete removes the PTR record paired with a deleted forward record: the
// PTR at the owner name derived from ip whose content still points at
// forwardName. A missing or repointed PTR is a no-op, not an error.
func (c *Creator) Delete(ctx context.Context, ip, forwardName, actor, clientIP string) (*Outcome, error) {
	ptrName, err := dnsname.ReverseName(ip)
	if err != nil {
		return nil, &validation.Error{Field: "content", Message: err.Error()}
	}

	zone, err := c.db.BestMatchingReverseZone(ctx, ptrName)
	if errors.Is(err, database.ErrNotFound) {
		return &Outcome{OK: true, Message: "no reverse zone covers this address"}, nil
	}
	if err != nil {
		return nil, err
	}

	set, err := c.db.RRSet(ctx, zone.ID, ptrName, validation.TypePTR)
	if err != nil {
		return nil, err
	}
	target := dnsname.Fqdn(forwardName)
	for _, r := range set {
		if r.Content != target {
			continue
		}
		record, warning, err := c.svc.Delete(ctx, r.ID, actor, clientIP)
		if err != nil {
			return nil, err
		}
		return &Outcome{OK: true, Record: record, Warning: warning}, nil
	}
	return &Outcome{OK: true, Message: "no matching PTR record found"}, nil
}

// DeleteForward removes the A/AAAA record paired with a deleted PTR: the
// forward record named by the PTR's target whose content is the address
// the PTR covered. Used when a PTR is deleted with forward cleanup
// requested.
func (c *Creator) DeleteForward(ctx context.Context, ptrName, ptrTarget, actor, clientIP string) (*Outcome, error) {
	ip, err := dnsname.ParseReverseName(ptrName)
	if err != nil {
		return nil, &validation.Error{Field: "name", Message: err.Error()}
	}

	forwardName := dnsname.Fqdn(ptrTarget)
	zone, err := c.db.BestMatchingZone(ctx, forwardName)
	if errors.Is(err, database.ErrNotFound) {
		return &Outcome{OK: true, Message: "no forward zone covers " + forwardName}, nil
	}
	if err != nil {
		return nil, err
	}

	bare := trimDot(forwardName)
	for _, rtype := range []string{validation.TypeA, validation.TypeAAAA} {
		set, err := c.db.RRSet(ctx, zone.ID, bare, rtype)
		if err != nil {
			return nil, err
		}
		for _, r := range set {
			if r.Content != ip {
				continue
			}
			record, warning, err := c.svc.Delete(ctx, r.ID, actor, clientIP)
			if err != nil {
				return nil, err
			}
			return &Outcome{OK: true, Record: record, Warning: warning}, nil
		}
	}
	return &Outcome{OK: true, Message: "no matching forward record found"}, nil
}

func trimDot(name string) string {
	if len(name) > 0 && name[len(name)-1] == '.' {
		return name[:len(name)-1]
	}
	return name
}
