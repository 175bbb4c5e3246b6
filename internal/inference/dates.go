package inference

import (
	"strings"
	"time"
)

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParsePostedDate normalizes the posted-date text of every adapter. The
// policy never errors: empty input resolves to now; text containing "ago"
// resolves to now minus one day (a deliberately coarse reading of relative
// phrasing); anything else is parsed as ISO-8601 with a trailing "Z"
// treated as UTC, falling back to now when unparseable.
func ParsePostedDate(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now
	}

	if strings.Contains(strings.ToLower(raw), "ago") {
		return now.Add(-24 * time.Hour)
	}

	candidate := raw
	if strings.HasSuffix(candidate, "Z") {
		candidate = strings.TrimSuffix(candidate, "Z") + "+00:00"
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t
		}
	}
	return now
}
