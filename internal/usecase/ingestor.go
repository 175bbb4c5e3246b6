package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"JobScanner/internal/domain"
	"JobScanner/internal/inference"
	"JobScanner/internal/ports"
)

const (
	defaultCurrency = "KES"
	defaultPeriod   = "monthly"
)

// ErrInvalidListing marks records discarded before persistence.
var ErrInvalidListing = errors.New("invalid listing")

// Ingestor normalizes one raw listing and persists it idempotently:
// resolve the organization, compute the dedup key, upsert. The clock is
// injected so tests control "now".
type Ingestor struct {
	organizations ports.OrganizationRepository
	listings      ports.ListingRepository
	engine        *inference.Engine
	now           func() time.Time
}

// NewIngestor constructs the ingestion use case.
func NewIngestor(orgs ports.OrganizationRepository, listings ports.ListingRepository, engine *inference.Engine, now func() time.Time) *Ingestor {
	if now == nil {
		now = time.Now
	}
	return &Ingestor{organizations: orgs, listings: listings, engine: engine, now: now}
}

// Ingest validates, enriches, and upserts a raw listing. It reports
// whether a new row was created; re-ingestion of a known dedup key only
// touches LastUpdatedAt and reactivates the row.
func (i *Ingestor) Ingest(ctx context.Context, raw domain.RawListing) (created bool, err error) {
	raw.Title = strings.TrimSpace(raw.Title)
	if len(raw.Title) < 3 {
		return false, fmt.Errorf("%w: title %q too short", ErrInvalidListing, raw.Title)
	}
	if raw.SourcePlatform == "" {
		return false, fmt.Errorf("%w: missing source platform", ErrInvalidListing)
	}

	enriched := i.engine.Enrich(raw)

	company := enriched.Company
	if company == "" {
		company = "Unknown"
	}
	org, err := i.organizations.GetOrCreate(ctx, company, domain.Organization{
		Name:     company,
		Location: enriched.Location,
	})
	if err != nil {
		return false, fmt.Errorf("resolve organization %q: %w", company, err)
	}

	now := i.now()
	listing := domain.JobListing{
		OrganizationID:  org.ID,
		Title:           enriched.Title,
		Description:     enriched.Description,
		Requirements:    enriched.Requirements,
		Location:        enriched.Location,
		County:          i.engine.ExtractCounty(enriched.Location),
		RemoteType:      enriched.RemoteType,
		EmploymentType:  enriched.EmploymentType,
		ExperienceLevel: enriched.ExperienceLevel,
		SalaryMin:       enriched.SalaryMin,
		SalaryMax:       enriched.SalaryMax,
		SalaryCurrency:  defaultCurrency,
		SalaryPeriod:    defaultPeriod,
		Skills:          enriched.Skills,
		SourcePlatform:  enriched.SourcePlatform,
		SourceURL:       enriched.SourceURL,
		ExternalID:      enriched.ExternalID,
		PostedDate:      inference.ParsePostedDate(enriched.PostedRaw, now),
		FirstSeenAt:     now,
		LastUpdatedAt:   now,
		IsActive:        true,
	}

	created, err = i.listings.Upsert(ctx, listing)
	if err != nil {
		return false, fmt.Errorf("upsert listing %s/%s: %w", listing.SourcePlatform, listing.ExternalID, err)
	}
	return created, nil
}
