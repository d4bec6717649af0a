package utils

import (
	"fmt"
	"strings"
	"time"
)

var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func FormatTimeISO(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseTimeISO accepts ISO-8601 timestamps with or without zone and
// fractional seconds, and plain dates. Values without a zone are read as UTC.
func ParseTimeISO(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO-8601 time %q", value)
}
