package zones

import (
	"context"
	"fmt"
	"strings"

	"github.com/miekg/dns"

	"github.com/jroosing/zonekeeper/internal/dnsname"
	"github.com/jroosing/zonekeeper/internal/validation"
)

// Export renders a zone's records as BIND zone file text. Each record is
// parsed through the DNS library so the output is canonical presentation
// format; records the library cannot parse are emitted as comments rather
// than silently dropped.
func (s *Service) Export(ctx context.Context, id int64) (string, error) {
	zone, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	rows, err := s.db.RecordsByZone(ctx, id)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "$ORIGIN %s\n", dnsname.Fqdn(zone.Name))
	ttl := s.dns.TTL
	if ttl <= 0 {
		ttl = 3600
	}
	fmt.Fprintf(&b, "$TTL %d\n", ttl)

	for _, r := range rows {
		if r.Disabled {
			continue
		}
		line := fmt.Sprintf("%s %d IN %s %s", dnsname.Fqdn(r.Name), r.TTL, r.Type, exportRdata(r.Type, r.Content, r.Prio))
		rr, err := dns.NewRR(line)
		if err != nil {
			fmt.Fprintf(&b, "; unparseable record: %s\n", line)
			continue
		}
		b.WriteString(rr.String())
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// exportRdata rebuilds presentation-format rdata from the stored content
// and the separate priority column.
func exportRdata(rtype, content string, prio int) string {
	switch rtype {
	case validation.TypeMX, validation.TypeSRV:
		return fmt.Sprintf("%d %s", prio, content)
	case validation.TypeTXT:
		if strings.HasPrefix(content, `"`) {
			return content
		}
		return fmt.Sprintf("%q", content)
	default:
		return content
	}
}
