// Package dnsname converts between zone-relative labels and fully qualified
// record names, and derives reverse (in-addr.arpa / ip6.arpa) names from
// IP addresses.
//
// PowerDNS stores names lowercase and without a trailing dot; every function
// here follows that convention unless noted otherwise.
package dnsname

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/miekg/dns"
	"golang.org/x/net/idna"
)

// Apex is the zone-apex marker used in relative record names.
const Apex = "@"

// RestoreZoneSuffix converts a zone-relative label to a fully qualified name
// within zone. An empty label or the apex marker yields the zone name itself;
// a label that already carries the zone suffix is returned unchanged.
func RestoreZoneSuffix(label, zone string) string {
	label = strings.TrimSuffix(label, ".")
	if label == "" || label == Apex {
		return zone
	}
	if hasZoneSuffix(label, zone) {
		return label
	}
	return label + "." + zone
}

// StripZoneSuffix removes a trailing zone suffix from fqdn, leaving the
// relative label. The zone apex strips down to "@".
func StripZoneSuffix(fqdn, zone string) string {
	fqdn = strings.TrimSuffix(fqdn, ".")
	if strings.EqualFold(fqdn, zone) {
		return Apex
	}
	if hasZoneSuffix(fqdn, zone) {
		return fqdn[:len(fqdn)-len(zone)-1]
	}
	return fqdn
}

func hasZoneSuffix(name, zone string) bool {
	if len(name) <= len(zone) {
		return strings.EqualFold(name, zone)
	}
	return strings.EqualFold(name[len(name)-len(zone):], zone) &&
		name[len(name)-len(zone)-1] == '.'
}

// ToPunycode converts a possibly-internationalized name to its ASCII
// (xn--) form for storage.
func ToPunycode(name string) (string, error) {
	ascii, err := idna.ToASCII(name)
	if err != nil {
		return "", fmt.Errorf("punycode conversion of %q failed: %w", name, err)
	}
	return ascii, nil
}

// ToUnicode converts a stored xn-- name back to its display form.
func ToUnicode(name string) (string, error) {
	uni, err := idna.ToUnicode(name)
	if err != nil {
		return "", fmt.Errorf("unicode conversion of %q failed: %w", name, err)
	}
	return uni, nil
}

// IsValid reports whether name is a syntactically valid domain name.
func IsValid(name string) bool {
	if name == "" {
		return false
	}
	_, ok := dns.IsDomainName(dns.Fqdn(name))
	return ok
}

// Fqdn appends a trailing dot if name does not already end with one.
func Fqdn(name string) string {
	return dns.Fqdn(name)
}

// ReverseName derives the PTR owner name for an IPv4 or IPv6 address,
// without the trailing dot.
func ReverseName(ip string) (string, error) {
	rev, err := dns.ReverseAddr(ip)
	if err != nil {
		return "", fmt.Errorf("no reverse name for %q: %w", ip, err)
	}
	return strings.TrimSuffix(rev, "."), nil
}

// ReverseV6NetworkName returns the /64 reverse zone name for an IPv6 prefix
// given as four hextets (e.g. "2001:db8:1:1" -> "1.0.0.0...2.ip6.arpa").
func ReverseV6NetworkName(prefix string) (string, error) {
	ip := net.ParseIP(prefix + "::")
	if ip == nil || ip.To4() != nil {
		return "", fmt.Errorf("invalid IPv6 prefix %q", prefix)
	}
	ip = ip.To16()

	// First 64 bits, one nibble per label, least significant first.
	nibbles := make([]string, 0, 16)
	for i := 7; i >= 0; i-- {
		nibbles = append(nibbles,
			strconv.FormatUint(uint64(ip[i]&0x0f), 16),
			strconv.FormatUint(uint64(ip[i]>>4), 16))
	}
	return strings.Join(nibbles, ".") + ".ip6.arpa", nil
}

// ParseReverseName converts a PTR owner name back to the IP address it
// covers. Only full names (4 octets or 32 nibbles) can be parsed.
func ParseReverseName(name string) (string, error) {
	name = strings.TrimSuffix(strings.ToLower(name), ".")

	if rest, ok := strings.CutSuffix(name, ".in-addr.arpa"); ok {
		octets := strings.Split(rest, ".")
		if len(octets) != 4 {
			return "", fmt.Errorf("reverse name %q does not cover a full IPv4 address", name)
		}
		out := make([]string, 4)
		for i, o := range octets {
			n, err := strconv.Atoi(o)
			if err != nil || n < 0 || n > 255 {
				return "", fmt.Errorf("invalid octet %q in reverse name %q", o, name)
			}
			out[3-i] = o
		}
		return strings.Join(out, "."), nil
	}

	if rest, ok := strings.CutSuffix(name, ".ip6.arpa"); ok {
		nibbles := strings.Split(rest, ".")
		if len(nibbles) != 32 {
			return "", fmt.Errorf("reverse name %q does not cover a full IPv6 address", name)
		}
		var b strings.Builder
		for i := 31; i >= 0; i-- {
			if len(nibbles[i]) != 1 || !isHexDigit(nibbles[i][0]) {
				return "", fmt.Errorf("invalid nibble %q in reverse name %q", nibbles[i], name)
			}
			b.WriteString(nibbles[i])
			if i > 0 && i%4 == 0 {
				b.WriteByte(':')
			}
		}
		ip := net.ParseIP(b.String())
		if ip == nil {
			return "", fmt.Errorf("reverse name %q does not parse to an IPv6 address", name)
		}
		return ip.String(), nil
	}

	return "", fmt.Errorf("%q is not a reverse name", name)
}

// IsReverseZone reports whether a zone name lives under the arpa tree.
func IsReverseZone(zone string) bool {
	zone = strings.TrimSuffix(strings.ToLower(zone), ".")
	return strings.HasSuffix(zone, ".in-addr.arpa") || strings.HasSuffix(zone, ".ip6.arpa")
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}
