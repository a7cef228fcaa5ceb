package reverse

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jroosing/zonekeeper/internal/database"
	"github.com/jroosing/zonekeeper/internal/dnsname"
	"github.com/jroosing/zonekeeper/internal/records"
	"github.com/jroosing/zonekeeper/internal/validation"
)

const (
	// DefaultIPv6Count bounds IPv6 network expansion when the caller does
	// not specify a count.
	DefaultIPv6Count = 256
	// MaxIPv6Count is the hard ceiling on one batch request.
	MaxIPv6Count = 1000

	// Failure messages are sampled; full per-item detail would drown the
	// summary on a badly-parameterized /24.
	maxErrorSamples = 5
)

// BatchResult tallies a best-effort network generation run. The operation
// is never atomic: partial completion is reported, not rolled back.
type BatchResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
	Message string   `json:"message"`
}

func (r *BatchResult) summarize(what string) {
	r.Message = fmt.Sprintf("%s: %d pairs created, %d skipped (already present), %d failed", what, r.Created, r.Skipped, r.Failed)
}

func (r *BatchResult) fail(err error) {
	r.Failed++
	if len(r.Errors) < maxErrorSamples {
		r.Errors = append(r.Errors, err.Error())
	}
}

// NetworkInput describes a batch forward/reverse generation request.
type NetworkInput struct {
	// NetworkPrefix is "a.b.c" for IPv4 (a /24) or four hextets such as
	// "2001:db8:1:1" for IPv6 (a /64).
	NetworkPrefix string
	// HostPrefix is prepended to the per-address label, e.g. "host".
	HostPrefix string
	// Domain is the forward domain the host labels live under.
	Domain string
	// ZoneID is the forward zone receiving the A/AAAA records.
	ZoneID int64
	// Count bounds IPv6 expansion; ignored for IPv4.
	Count   int
	TTL     string
	Prio    string
	Comment string

	Actor    string
	ClientIP string
}

// CreateIPv4Network enumerates host octets 1..254 of a /24 and creates an
// A and PTR record pair for each, skipping pairs that already exist.
func (c *Creator) CreateIPv4Network(ctx context.Context, in NetworkInput) (*BatchResult, error) {
	octets := strings.Split(in.NetworkPrefix, ".")
	if len(octets) != 3 {
		return nil, &validation.Error{Field: "network", Message: fmt.Sprintf("IPv4 network prefix must be three octets, got %q", in.NetworkPrefix)}
	}
	for _, o := range octets {
		if n, err := strconv.Atoi(o); err != nil || n < 0 || n > 255 {
			return nil, &validation.Error{Field: "network", Message: fmt.Sprintf("invalid octet %q in network prefix", o)}
		}
	}

	revZone, err := c.coveringReverseZone(ctx, in.NetworkPrefix+".1")
	if err != nil {
		return nil, err
	}

	result := &BatchResult{}
	for octet := 1; octet <= 254; octet++ {
		ip := fmt.Sprintf("%s.%d", in.NetworkPrefix, octet)
		label := fmt.Sprintf("%s%d", in.HostPrefix, octet)
		c.createPair(ctx, in, revZone, result, validation.TypeA, ip, label)
	}
	result.summarize(fmt.Sprintf("network %s.0/24", in.NetworkPrefix))
	return result, nil
}

// CreateIPv6Network enumerates the first Count host addresses of a /64
// and creates an AAAA and PTR record pair for each. Host labels carry the
// zero-padded hex host part.
func (c *Creator) CreateIPv6Network(ctx context.Context, in NetworkInput) (*BatchResult, error) {
	if _, err := dnsname.ReverseV6NetworkName(in.NetworkPrefix); err != nil {
		return nil, &validation.Error{Field: "network", Message: err.Error()}
	}

	count := in.Count
	if count <= 0 {
		count = DefaultIPv6Count
	}
	if count > MaxIPv6Count {
		return nil, &validation.Error{Field: "count", Message: fmt.Sprintf("count %d exceeds the limit of %d addresses per batch", count, MaxIPv6Count)}
	}

	revZone, err := c.coveringReverseZone(ctx, in.NetworkPrefix+"::1")
	if err != nil {
		return nil, err
	}

	result := &BatchResult{}
	for host := 1; host <= count; host++ {
		ip := fmt.Sprintf("%s::%x", in.NetworkPrefix, host)
		label := fmt.Sprintf("%s%04x", in.HostPrefix, host)
		c.createPair(ctx, in, revZone, result, validation.TypeAAAA, ip, label)
	}
	result.summarize(fmt.Sprintf("network %s::/64", in.NetworkPrefix))
	return result, nil
}

// coveringReverseZone resolves the reverse zone for a sample address of
// the network, turning absence into a field-tagged error so the batch
// fails fast before any record is written.
func (c *Creator) coveringReverseZone(ctx context.Context, sampleIP string) (*database.Zone, error) {
	ptrName, err := dnsname.ReverseName(sampleIP)
	if err != nil {
		return nil, &validation.Error{Field: "network", Message: err.Error()}
	}
	zone, err := c.db.BestMatchingReverseZone(ctx, ptrName)
	if errors.Is(err, database.ErrNotFound) {
		return nil, &validation.Error{Field: "network", Message: fmt.Sprintf("no reverse zone covers %s; create it before generating the network", ptrName)}
	}
	if err != nil {
		return nil, err
	}
	return zone, nil
}

// createPair creates the forward and PTR record for one address, updating
// the tally. A pair whose records all pre-exist counts as skipped; any
// other failure counts the pair as failed and the batch continues.
func (c *Creator) createPair(ctx context.Context, in NetworkInput, revZone *database.Zone, result *BatchResult, rtype, ip, label string) {
	forwardName := label + "." + strings.TrimSuffix(in.Domain, ".")
	ptrName, err := dnsname.ReverseName(ip)
	if err != nil {
		result.fail(fmt.Errorf("%s: %w", ip, err))
		return
	}

	created := false

	_, err = c.svc.Add(ctx, records.AddInput{
		ZoneID:   in.ZoneID,
		Name:     forwardName,
		Type:     rtype,
		Content:  ip,
		TTL:      in.TTL,
		Prio:     in.Prio,
		Comment:  in.Comment,
		Actor:    in.Actor,
		ClientIP: in.ClientIP,
	})
	var conflict *records.ConflictError
	switch {
	case err == nil:
		created = true
	case errors.As(err, &conflict):
		// Already present; fall through to the PTR side.
	default:
		result.fail(fmt.Errorf("%s %s: %w", forwardName, rtype, err))
		return
	}

	_, err = c.svc.Add(ctx, records.AddInput{
		ZoneID:   revZone.ID,
		Name:     ptrName,
		Type:     validation.TypePTR,
		Content:  dnsname.Fqdn(forwardName),
		TTL:      in.TTL,
		Comment:  in.Comment,
		Actor:    in.Actor,
		ClientIP: in.ClientIP,
	})
	switch {
	case err == nil:
		created = true
	case errors.As(err, &conflict):
	default:
		result.fail(fmt.Errorf("%s PTR: %w", ptrName, err))
		return
	}

	if created {
		result.Created++
	} else {
		result.Skipped++
	}
}
