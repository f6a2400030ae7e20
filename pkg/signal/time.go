package signal

import (
	"time"
)

// timeLayouts are the accepted timestamp formats, tried in order.
// Collectors normally emit RFC 3339, but registry payloads have been seen
// with naive datetimes and bare dates.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Time is a timestamp field that never fails to decode. Malformed strings,
// nulls, and non-string JSON values all produce the zero value, which the
// engine treats as "absent". Presence is tested with IsZero.
type Time struct {
	time.Time
}

// UnmarshalJSON decodes a JSON timestamp, degrading to the zero value on
// any malformed input. It never returns an error.
func (t *Time) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}

	// Only JSON strings can hold a timestamp; null, numbers, objects and
	// arrays all mean "absent".
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return nil
	}
	s := string(data[1 : len(data)-1])
	if parsed, ok := parseTime(s); ok {
		t.Time = parsed
	}
	return nil
}

// MarshalJSON encodes the timestamp as an RFC 3339 string, or null when
// absent.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339) + `"`), nil
}

// parseTime attempts each accepted layout and reports whether any matched.
func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
