package ports

import (
	"context"
	"time"

	"JobScanner/internal/domain"
)

// Element is a handle to one located page element.
type Element interface {
	Text() string
	Attribute(name string) (string, bool)
	Find(selector string) (Element, bool)
	FindAll(selector string) []Element
}

// Session is a single controllable browsing session. Implementations own
// whatever transport or automation sits behind it; adapters only see this
// contract.
type Session interface {
	Navigate(ctx context.Context, url string) error
	CurrentURL() string
	// WaitUntilPresent blocks until at least one element matches selector
	// or the timeout elapses, in which case it returns an error.
	WaitUntilPresent(ctx context.Context, selector string, timeout time.Duration) error
	Find(selector string) (Element, bool)
	FindAll(selector string) []Element
	Close() error
}

// SessionFactory opens sessions. Each work unit owns exactly one session
// for its duration and must close it on every exit path.
type SessionFactory interface {
	Open(ctx context.Context) (Session, error)
}

// OrganizationRepository resolves owning organizations by exact name.
type OrganizationRepository interface {
	// GetOrCreate returns the organization with the given name, creating
	// it with the provided defaults if absent. Concurrent calls for the
	// same name must resolve to a single row.
	GetOrCreate(ctx context.Context, name string, defaults domain.Organization) (domain.Organization, error)
}

// ListingRepository persists job listings with dedup-key idempotence.
type ListingRepository interface {
	// Upsert inserts the listing or, when a row with the same dedup key
	// exists, bumps its LastUpdatedAt and re-asserts IsActive. The write
	// is a single atomic operation; created reports whether a new row
	// was inserted.
	Upsert(ctx context.Context, listing domain.JobListing) (created bool, err error)

	// DeleteInactiveBefore removes listings with IsActive=false whose
	// LastUpdatedAt is older than cutoff, returning the count deleted.
	DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// TopSkills aggregates skill occurrence counts and average minimum
	// salary over active listings.
	TopSkills(ctx context.Context, limit int) ([]domain.SkillDemand, error)
}

// SkillDemandRepository stores the derived skill-demand table.
type SkillDemandRepository interface {
	// Replace atomically swaps the table contents for the given rows.
	Replace(ctx context.Context, rows []domain.SkillDemand) error
}

// Scheduler fires recurring jobs on cron expressions.
type Scheduler interface {
	Add(spec string, job func()) error
	Start()
	Stop()
}

// CycleLock guards against overlapping orchestration cycles across
// process instances. Acquire reports false when another cycle holds it.
type CycleLock interface {
	Acquire(ctx context.Context, ttl time.Duration) (bool, error)
	Release(ctx context.Context) error
}
