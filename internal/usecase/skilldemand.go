package usecase

import (
	"context"
	"log/slog"

	"JobScanner/internal/ports"
)

const skillDemandLimit = 100

// SkillDemandRefresher rebuilds the derived skill-demand table from
// active listings after a scrape cycle. The reporting layer that reads
// the table is outside this service.
type SkillDemandRefresher struct {
	listings ports.ListingRepository
	demand   ports.SkillDemandRepository
	logger   *slog.Logger
}

// NewSkillDemandRefresher constructs the refresher.
func NewSkillDemandRefresher(listings ports.ListingRepository, demand ports.SkillDemandRepository, logger *slog.Logger) *SkillDemandRefresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &SkillDemandRefresher{listings: listings, demand: demand, logger: logger}
}

// Refresh recomputes and swaps in the skill-demand rows. Failures are
// logged and absorbed; the next cycle retries naturally.
func (r *SkillDemandRefresher) Refresh(ctx context.Context) {
	rows, err := r.listings.TopSkills(ctx, skillDemandLimit)
	if err != nil {
		r.logger.Error("aggregate skill demand failed", "error", err)
		return
	}

	if err := r.demand.Replace(ctx, rows); err != nil {
		r.logger.Error("replace skill demand failed", "error", err)
		return
	}

	r.logger.Info("skill demand refreshed", "skills", len(rows))
}
