package validation

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ISO8601Millis is the normalized form written to the CRM, always UTC with milliseconds
const ISO8601Millis = "2006-01-02T15:04:05.000Z"

var ErrInvalidTimestamp = errors.New("validation: invalid timestamp")

// expandedYear matches ISO-8601 six digit years such as +002024-01-15
var expandedYear = regexp.MustCompile(`^([+-])(\d{6})(-.*)?$`)

// Layouts tried before the generic parser. Values without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
	"2006-01",
	"01/02/2006",
	"2006/01/02",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC850,
	time.ANSIC,
	time.UnixDate,
	time.RubyDate,
	"Mon Jan 02 2006 15:04:05 GMT-0700", // browser Date.toString()
	"January 2, 2006 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 Jan 2006",
}

// ParseTimestamp parses a form timestamp, accepting roughly what a browser Date accepts
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidTimestamp
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}

	value, ok := normalizeYear(value)
	if !ok {
		return time.Time{}, ErrInvalidTimestamp
	}
	// Date.toString() appends a zone name, e.g. " (Central European Standard Time)"
	if i := strings.Index(value, " ("); i > 0 && strings.HasSuffix(value, ")") {
		value = value[:i]
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidTimestamp
	}
	return t, nil
}

// normalizeYear rewrites +00YYYY years to YYYY and rejects bare numbers that are not
// a four digit year; the generic parser would read those as epoch timestamps.
func normalizeYear(value string) (string, bool) {
	if m := expandedYear.FindStringSubmatch(value); m != nil {
		year, _ := strconv.Atoi(m[2])
		if m[1] == "-" || year > 9999 {
			return "", false
		}
		value = strconv.Itoa(year) + m[3]
		if year < 1000 {
			value = strings.Repeat("0", 4-len(strconv.Itoa(year))) + value
		}
	}

	if isDigits(value) {
		if len(value) != 4 {
			return "", false
		}
		return value + "-01-01", true
	}
	return value, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// NormalizeTimestamp returns value as ISO-8601 in UTC with millisecond precision
func NormalizeTimestamp(value string) (string, error) {
	t, err := ParseTimestamp(value)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(ISO8601Millis), nil
}
