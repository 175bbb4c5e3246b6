package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"JobScanner/internal/domain"
	"JobScanner/internal/ports"
)

// memOrgRepo is an in-memory OrganizationRepository safe for concurrent use.
type memOrgRepo struct {
	mu     sync.Mutex
	nextID int64
	byName map[string]domain.Organization
}

var _ ports.OrganizationRepository = (*memOrgRepo)(nil)

func newMemOrgRepo() *memOrgRepo {
	return &memOrgRepo{byName: map[string]domain.Organization{}}
}

func (r *memOrgRepo) GetOrCreate(_ context.Context, name string, defaults domain.Organization) (domain.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if org, ok := r.byName[name]; ok {
		return org, nil
	}
	r.nextID++
	defaults.ID = r.nextID
	defaults.Name = name
	r.byName[name] = defaults
	return defaults, nil
}

// memListingRepo is an in-memory ListingRepository enforcing the dedup
// key the way the unique constraint does in Postgres.
type memListingRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[domain.DedupKey]*domain.JobListing

	// failPlatform simulates a persistence fault for one source.
	failPlatform string
}

var _ ports.ListingRepository = (*memListingRepo)(nil)

func newMemListingRepo() *memListingRepo {
	return &memListingRepo{rows: map[domain.DedupKey]*domain.JobListing{}}
}

func (r *memListingRepo) Upsert(_ context.Context, listing domain.JobListing) (bool, error) {
	if r.failPlatform != "" && listing.SourcePlatform == r.failPlatform {
		return false, errors.New("simulated store failure")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := listing.Key()
	if existing, ok := r.rows[key]; ok {
		existing.LastUpdatedAt = listing.LastUpdatedAt
		existing.IsActive = true
		return false, nil
	}

	r.nextID++
	listing.ID = r.nextID
	r.rows[key] = &listing
	return true, nil
}

func (r *memListingRepo) DeleteInactiveBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for key, row := range r.rows {
		if !row.IsActive && row.LastUpdatedAt.Before(cutoff) {
			delete(r.rows, key)
			deleted++
		}
	}
	return deleted, nil
}

func (r *memListingRepo) TopSkills(_ context.Context, limit int) ([]domain.SkillDemand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := map[string]int{}
	for _, row := range r.rows {
		if !row.IsActive {
			continue
		}
		for _, skill := range row.Skills {
			counts[skill]++
		}
	}

	var demands []domain.SkillDemand
	for skill, count := range counts {
		demands = append(demands, domain.SkillDemand{Skill: skill, DemandCount: count})
		if len(demands) >= limit {
			break
		}
	}
	return demands, nil
}

func (r *memListingRepo) get(key domain.DedupKey) (domain.JobListing, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[key]
	if !ok {
		return domain.JobListing{}, false
	}
	return *row, true
}

func (r *memListingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func (r *memListingRepo) put(listing domain.JobListing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[listing.Key()] = &listing
}

// memDemandRepo records the last Replace call.
type memDemandRepo struct {
	mu   sync.Mutex
	rows []domain.SkillDemand
}

var _ ports.SkillDemandRepository = (*memDemandRepo)(nil)

func (r *memDemandRepo) Replace(_ context.Context, rows []domain.SkillDemand) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = rows
	return nil
}
