// Package validation performs per-type syntactic checks on DNS record input
// before it reaches the store.
//
// Validation is also a normalization step: hostname-valued content (CNAME,
// MX, NS, SRV, PTR targets) is canonicalized to FQDN form with a trailing
// dot appended when missing, blank TTLs fall back to the configured default,
// and priority is coerced to an integer for the types that carry one.
package validation

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/jroosing/zonekeeper/internal/dnsname"
)

// Record types accepted by the validator.
const (
	TypeA     = "A"
	TypeAAAA  = "AAAA"
	TypeCNAME = "CNAME"
	TypeMX    = "MX"
	TypeNS    = "NS"
	TypePTR   = "PTR"
	TypeSOA   = "SOA"
	TypeSRV   = "SRV"
	TypeTXT   = "TXT"
)

var supportedTypes = map[string]bool{
	TypeA:     true,
	TypeAAAA:  true,
	TypeCNAME: true,
	TypeMX:    true,
	TypeNS:    true,
	TypePTR:   true,
	TypeSOA:   true,
	TypeSRV:   true,
	TypeTXT:   true,
}

// hostnameContent lists the types whose content is a hostname and gets
// the trailing dot appended during normalization.
var hostnameContent = map[string]bool{
	TypeCNAME: true,
	TypeMX:    true,
	TypeNS:    true,
	TypePTR:   true,
	TypeSRV:   true,
}

// priorityTypes lists the types for which the priority field is meaningful.
var priorityTypes = map[string]bool{
	TypeMX:  true,
	TypeSRV: true,
}

// Error is a field-tagged validation failure. Field is one of
// "name", "type", "content", "ttl", "prio".
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func errf(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Normalized is validated, canonicalized record input ready for storage.
type Normalized struct {
	Name    string
	Type    string
	Content string
	TTL     int
	Prio    int
}

// Validator validates record input against per-type rules.
type Validator struct {
	// DefaultTTL is used when the TTL field is blank.
	DefaultTTL int
}

// New returns a Validator with the given default TTL (3600 when zero).
func New(defaultTTL int) *Validator {
	if defaultTTL <= 0 {
		defaultTTL = 3600
	}
	return &Validator{DefaultTTL: defaultTTL}
}

// Validate checks a record's fields. Name must already be fully qualified
// (the caller normalizes the zone suffix first). TTL and prio arrive as
// strings so blank form input can fall back to defaults.
func (v *Validator) Validate(rtype, name, content, ttl, prio string) (Normalized, error) {
	var out Normalized

	rtype = strings.ToUpper(strings.TrimSpace(rtype))
	if !supportedTypes[rtype] {
		return out, errf("type", "unsupported record type %q", rtype)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return out, errf("name", "name must not be blank")
	}
	ascii, err := dnsname.ToPunycode(name)
	if err != nil {
		return out, errf("name", "%v", err)
	}
	if !dnsname.IsValid(ascii) {
		return out, errf("name", "%q is not a valid domain name", name)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return out, errf("content", "content must not be blank")
	}
	content, err = v.validateContent(rtype, content)
	if err != nil {
		return out, err
	}

	ttlVal, err := v.validateTTL(ttl)
	if err != nil {
		return out, err
	}

	prioVal, err := validatePrio(rtype, prio)
	if err != nil {
		return out, err
	}

	out = Normalized{
		// Stored names are lowercase with no trailing dot, matching the
		// PowerDNS generic SQL backend convention.
		Name:    strings.ToLower(strings.TrimSuffix(ascii, ".")),
		Type:    rtype,
		Content: content,
		TTL:     ttlVal,
		Prio:    prioVal,
	}
	return out, nil
}

func (v *Validator) validateContent(rtype, content string) (string, error) {
	switch rtype {
	case TypeA:
		ip := net.ParseIP(content)
		if ip == nil || ip.To4() == nil {
			return "", errf("content", "%q is not an IPv4 address", content)
		}
		return ip.String(), nil

	case TypeAAAA:
		ip := net.ParseIP(content)
		if ip == nil || ip.To4() != nil {
			return "", errf("content", "%q is not an IPv6 address", content)
		}
		return ip.String(), nil

	case TypeTXT:
		return content, nil

	case TypeSOA:
		if len(strings.Fields(content)) != 7 {
			return "", errf("content", "SOA content must have 7 fields (primary hostmaster serial refresh retry expire minimum)")
		}
		return content, nil

	default:
		if !hostnameContent[rtype] {
			return content, nil
		}
		target := content
		if rtype == TypeSRV {
			// SRV content is "weight port target"; only the target is a hostname.
			fields := strings.Fields(content)
			if len(fields) != 3 {
				return "", errf("content", "SRV content must be \"weight port target\"")
			}
			for _, f := range fields[:2] {
				if n, err := strconv.Atoi(f); err != nil || n < 0 || n > 65535 {
					return "", errf("content", "SRV weight/port %q out of range", f)
				}
			}
			target = fields[2]
		}
		if net.ParseIP(strings.TrimSuffix(target, ".")) != nil {
			return "", errf("content", "%s target must be a hostname, not an IP address", rtype)
		}
		if !dnsname.IsValid(target) {
			return "", errf("content", "%q is not a valid hostname", target)
		}
		// Canonicalize to FQDN form rather than rejecting a missing dot.
		target = dnsname.Fqdn(target)
		if rtype == TypeSRV {
			fields := strings.Fields(content)
			return fields[0] + " " + fields[1] + " " + target, nil
		}
		return target, nil
	}
}

func (v *Validator) validateTTL(ttl string) (int, error) {
	ttl = strings.TrimSpace(ttl)
	if ttl == "" {
		return v.DefaultTTL, nil
	}
	n, err := strconv.Atoi(ttl)
	if err != nil {
		return 0, errf("ttl", "%q is not a number", ttl)
	}
	if n < 0 {
		return 0, errf("ttl", "ttl must not be negative")
	}
	return n, nil
}

func validatePrio(rtype, prio string) (int, error) {
	if !priorityTypes[rtype] {
		// Ignored for other types; forced to zero.
		return 0, nil
	}
	prio = strings.TrimSpace(prio)
	if prio == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(prio)
	if err != nil {
		return 0, errf("prio", "%q is not a number", prio)
	}
	if n < 0 || n > 65535 {
		return 0, errf("prio", "priority must be 0..65535")
	}
	return n, nil
}
