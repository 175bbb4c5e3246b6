// Package adapters holds the per-source listing extractors. Every adapter
// follows the same discipline: it owns one session per fetch and closes it
// on every exit path, it skips pages that never reach a ready state, it
// wraps per-item extraction so one malformed card cannot abort the batch,
// and on a fatal navigation failure it returns whatever it accumulated.
package adapters

import (
	"log/slog"
	"regexp"
	"strings"
	"time"

	"JobScanner/internal/ports"
	"JobScanner/internal/scraper"
)

const minTitleLen = 3

// deps bundles what every adapter needs.
type deps struct {
	sessions    ports.SessionFactory
	pacing      scraper.Pacing
	pageTimeout time.Duration
	logger      *slog.Logger
}

// Deps configures adapter construction.
type Deps struct {
	Sessions    ports.SessionFactory
	Pacing      scraper.Pacing
	PageTimeout time.Duration
	Logger      *slog.Logger
}

func (d Deps) internal(component string) deps {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := d.PageTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return deps{
		sessions:    d.Sessions,
		pacing:      d.Pacing,
		pageTimeout: timeout,
		logger:      logger.With("component", component),
	}
}

// validTitle reports whether a trimmed title passes the length guard.
func validTitle(title string) bool {
	return len(strings.TrimSpace(title)) >= minTitleLen
}

// firstGroup returns the first capture group of the pattern in s, or "".
func firstGroup(pattern *regexp.Regexp, s string) string {
	if m := pattern.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return ""
}
