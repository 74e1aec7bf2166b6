// Package tracknum turns order attributes into tracking numbers.
//
// Both steps are pure: Canonicalize builds the hash input and Generate
// derives a version-3 UUID from it, so neither needs any locking.
package tracknum

import (
	"strconv"
	"strings"
	"time"

	"github.com/RaikyD/tracking-number-service/internal/domain"
)

// Canonicalize concatenates origin, destination, customer id and the
// creation time, in that order and without separators. Weight, customer
// name and slug do not take part.
func Canonicalize(attrs domain.OrderAttributes) []byte {
	var b strings.Builder
	b.Grow(2 + 2 + 36 + 35)
	b.WriteString(attrs.OriginCountryID)
	b.WriteString(attrs.DestinationCountryID)
	b.WriteString(attrs.CustomerID.String())
	b.WriteString(FormatTimestamp(attrs.CreatedAt))
	return []byte(b.String())
}

// FormatTimestamp renders t as an ISO-8601 offset date-time in its shortest
// exact form, the representation tracking numbers have always been hashed
// with:
//
//	2018-11-20T19:29+08:00         seconds dropped when zero
//	2018-11-20T19:29:32.120Z       fraction in groups of 3, 6 or 9 digits
//	+10000-01-01T00:00Z            years past 9999 carry a sign
//
// time.RFC3339Nano differs on all three, so it can't be used here.
func FormatTimestamp(t time.Time) string {
	var b strings.Builder
	b.Grow(35)

	writeYear(&b, t.Year())
	b.WriteByte('-')
	writePadded(&b, int(t.Month()), 2)
	b.WriteByte('-')
	writePadded(&b, t.Day(), 2)
	b.WriteByte('T')
	writePadded(&b, t.Hour(), 2)
	b.WriteByte(':')
	writePadded(&b, t.Minute(), 2)

	sec, nano := t.Second(), t.Nanosecond()
	if sec > 0 || nano > 0 {
		b.WriteByte(':')
		writePadded(&b, sec, 2)
		if nano > 0 {
			b.WriteByte('.')
			switch {
			case nano%1_000_000 == 0:
				writePadded(&b, nano/1_000_000, 3)
			case nano%1_000 == 0:
				writePadded(&b, nano/1_000, 6)
			default:
				writePadded(&b, nano, 9)
			}
		}
	}

	_, offset := t.Zone()
	writeOffset(&b, offset)
	return b.String()
}

func writeYear(b *strings.Builder, year int) {
	switch {
	case year < 0 && year > -1000:
		b.WriteByte('-')
		writePadded(b, -year, 4)
	case year >= 0 && year < 1000:
		writePadded(b, year, 4)
	case year > 9999:
		b.WriteByte('+')
		b.WriteString(strconv.Itoa(year))
	default:
		b.WriteString(strconv.Itoa(year))
	}
}

func writeOffset(b *strings.Builder, offset int) {
	if offset == 0 {
		b.WriteByte('Z')
		return
	}
	if offset < 0 {
		b.WriteByte('-')
		offset = -offset
	} else {
		b.WriteByte('+')
	}
	writePadded(b, offset/3600, 2)
	b.WriteByte(':')
	writePadded(b, offset/60%60, 2)
	if s := offset % 60; s != 0 {
		b.WriteByte(':')
		writePadded(b, s, 2)
	}
}

func writePadded(b *strings.Builder, v, width int) {
	s := strconv.Itoa(v)
	for i := len(s); i < width; i++ {
		b.WriteByte('0')
	}
	b.WriteString(s)
}
