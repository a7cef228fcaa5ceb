package records

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Serials below this value are treated as plain counters rather than
// date-based YYYYMMDDnn values.
const dateSerialFloor = 1979999999

// soaFields is the number of space-separated fields in an SOA content
// string: primary, hostmaster, serial, refresh, retry, expire, minimum.
const soaFields = 7

const soaSerialIndex = 2

// Serial extracts the serial number from an SOA content string.
func Serial(content string) (int64, error) {
	fields := strings.Fields(content)
	if len(fields) != soaFields {
		return 0, fmt.Errorf("malformed SOA content %q: expected %d fields, got %d", content, soaFields, len(fields))
	}
	serial, err := strconv.ParseInt(fields[soaSerialIndex], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed SOA serial %q: %w", fields[soaSerialIndex], err)
	}
	return serial, nil
}

// WithSerial returns the SOA content string with its serial field replaced.
func WithSerial(content string, serial int64) (string, error) {
	fields := strings.Fields(content)
	if len(fields) != soaFields {
		return "", fmt.Errorf("malformed SOA content %q: expected %d fields, got %d", content, soaFields, len(fields))
	}
	fields[soaSerialIndex] = strconv.FormatInt(serial, 10)
	return strings.Join(fields, " "), nil
}

// NextSerial computes the successor of an SOA serial.
//
// A serial of 0 means the backend autoserial feature is in use and is left
// untouched. Plain counters below the date-based range increment by one.
// Date-based YYYYMMDDnn serials move to today's date with revision 01 when
// stale, increment the revision when already at today's (or a future) date,
// and roll to the following day when the revision would pass 99.
func NextSerial(current int64, now time.Time) int64 {
	if current == 0 {
		return 0
	}
	if current < dateSerialFloor {
		return current + 1
	}
	if current == dateSerialFloor {
		return 1
	}

	today := int64(now.Year())*10000 + int64(now.Month())*100 + int64(now.Day())
	date := current / 100
	revision := current % 100

	switch {
	case date < today:
		return today*100 + 1
	case revision < 99:
		return current + 1
	default:
		next := dateFromStamp(date, now.Location()).AddDate(0, 0, 1)
		return (int64(next.Year())*10000+int64(next.Month())*100+int64(next.Day()))*100 + 1
	}
}

func dateFromStamp(stamp int64, loc *time.Location) time.Time {
	return time.Date(int(stamp/10000), time.Month(stamp/100%100), int(stamp%100), 0, 0, 0, 0, loc)
}
