package nlp

import (
	"strings"
	"time"
)

// NormalizeQuery lowercases the query, replaces every character that is not
// a letter, digit, space, hyphen, or '#' with a space, collapses whitespace
// runs, and trims. Empty or whitespace-only input normalizes to "".
func NormalizeQuery(query string) string {
	lower := strings.ToLower(query)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '#':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// normalizeValue produces the type-specific canonical form of a raw entity
// value. Normalization is idempotent: applying it to an already-normalized
// value returns the same value.
func normalizeValue(t EntityType, raw string) string {
	switch t {
	case EntityDate:
		return normalizeDate(raw)
	case EntityTicketID, EntityDuration:
		return digitsOf(raw)
	default:
		return raw
	}
}

// normalizeDate resolves relative day words against the current clock and
// reformats known date layouts as ISO dates. Unparseable values pass
// through unchanged.
func normalizeDate(raw string) string {
	now := time.Now()
	switch raw {
	case "today":
		return now.Format(time.DateOnly)
	case "yesterday":
		return now.AddDate(0, 0, -1).Format(time.DateOnly)
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format(time.DateOnly)
	}
	for _, layout := range []string{"01/02/2006", time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(time.DateOnly)
		}
	}
	return raw
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
