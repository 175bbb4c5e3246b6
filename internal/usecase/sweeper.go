package usecase

import (
	"context"
	"log/slog"
	"time"

	"JobScanner/internal/ports"
)

// Sweeper purges inactive listings older than the retention window. It
// runs on its own schedule, decoupled from ingestion; failures are
// logged, never propagated.
type Sweeper struct {
	listings ports.ListingRepository
	window   time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewSweeper constructs a sweeper with the given retention window.
func NewSweeper(listings ports.ListingRepository, window time.Duration, logger *slog.Logger, now func() time.Time) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &Sweeper{listings: listings, window: window, logger: logger, now: now}
}

// Sweep deletes every listing that is inactive and untouched for longer
// than the retention window, reporting the count removed.
func (s *Sweeper) Sweep(ctx context.Context) int64 {
	cutoff := s.now().Add(-s.window)

	deleted, err := s.listings.DeleteInactiveBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("retention sweep failed", "error", err)
		return 0
	}

	s.logger.Info("retention sweep complete", "deleted", deleted, "cutoff", cutoff)
	return deleted
}
