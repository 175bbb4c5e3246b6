package domain

import "time"

// ExperienceLevel classifies seniority inferred from listing text.
type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "entry"
	ExperienceMid       ExperienceLevel = "mid"
	ExperienceSenior    ExperienceLevel = "senior"
	ExperienceExecutive ExperienceLevel = "executive"
)

// RemoteType classifies the working arrangement of a listing.
type RemoteType string

const (
	RemoteOnSite RemoteType = "on_site"
	RemoteFull   RemoteType = "remote"
	RemoteHybrid RemoteType = "hybrid"
)

// EmploymentType classifies the contract form of a listing.
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full_time"
	EmploymentPartTime   EmploymentType = "part_time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
	EmploymentFreelance  EmploymentType = "freelance"
)

// RawListing is what a source adapter extracts from a page before any
// enrichment. Only Title and SourcePlatform are guaranteed non-empty.
type RawListing struct {
	Title          string
	Company        string
	Description    string
	Requirements   string
	Location       string
	SourcePlatform string
	SourceURL      string
	ExternalID     string
	PostedRaw      string // unparsed posted-date text, may be relative or empty
	SalaryRaw      string // unparsed salary text, may be empty
}

// EnrichedListing is a RawListing plus the attributes the inference
// engine derived from its free text.
type EnrichedListing struct {
	RawListing
	ExperienceLevel ExperienceLevel
	RemoteType      RemoteType
	EmploymentType  EmploymentType
	Skills          []string
	SalaryMin       *float64
	SalaryMax       *float64
}

// Organization is the owning company of a listing, resolved by exact name.
// Created lazily on first reference and never deleted by the pipeline.
type Organization struct {
	ID       int64
	Name     string
	Industry string
	Size     string
	Location string
}

// DedupKey identifies one logical listing across repeated ingestions.
type DedupKey struct {
	SourcePlatform string
	ExternalID     string
	OrganizationID int64
}

// JobListing is the persisted form of one ingested listing. At most one
// row exists per DedupKey; re-ingestion touches LastUpdatedAt and
// reactivates instead of inserting.
type JobListing struct {
	ID              int64
	OrganizationID  int64
	Title           string
	Description     string
	Requirements    string
	Location        string
	County          string // empty means unknown
	RemoteType      RemoteType
	EmploymentType  EmploymentType
	ExperienceLevel ExperienceLevel
	SalaryMin       *float64
	SalaryMax       *float64
	SalaryCurrency  string
	SalaryPeriod    string
	Skills          []string
	Technologies    []string
	SourcePlatform  string
	SourceURL       string
	ExternalID      string
	PostedDate      time.Time
	FirstSeenAt     time.Time
	LastUpdatedAt   time.Time
	IsActive        bool
}

// Key returns the deduplication key of the listing.
func (j JobListing) Key() DedupKey {
	return DedupKey{
		SourcePlatform: j.SourcePlatform,
		ExternalID:     j.ExternalID,
		OrganizationID: j.OrganizationID,
	}
}

// SkillDemand is a derived analytics row rebuilt after each scrape cycle.
type SkillDemand struct {
	Skill       string
	DemandCount int
	AvgSalary   *float64
}
