package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"JobScanner/internal/domain"
	"JobScanner/internal/ports"
)

// ListingRepository persists job listings with dedup-key idempotence.
// Skills and technologies are stored as jsonb arrays.
type ListingRepository struct {
	db *sql.DB
}

var _ ports.ListingRepository = (*ListingRepository)(nil)

// NewListingRepository wires a sql.DB implementation.
func NewListingRepository(db *sql.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// Upsert inserts the listing or, when the dedup key already exists, bumps
// last_updated_at and reactivates it. The write is one statement, so a
// cancelled unit can never leave a half-written row; (xmax = 0) on the
// returned row distinguishes insert from update.
func (r *ListingRepository) Upsert(ctx context.Context, listing domain.JobListing) (bool, error) {
	skills, err := json.Marshal(emptyIfNil(listing.Skills))
	if err != nil {
		return false, fmt.Errorf("marshal skills: %w", err)
	}
	technologies, err := json.Marshal(emptyIfNil(listing.Technologies))
	if err != nil {
		return false, fmt.Errorf("marshal technologies: %w", err)
	}

	query, args, err := builder.
		Insert("job_listings").
		Columns(
			"organization_id", "title", "description", "requirements",
			"location", "county", "remote_type", "employment_type", "experience_level",
			"salary_min", "salary_max", "salary_currency", "salary_period",
			"skills", "technologies",
			"source_platform", "source_url", "external_id",
			"posted_date", "first_seen_at", "last_updated_at", "is_active",
		).
		Values(
			listing.OrganizationID, listing.Title, listing.Description, listing.Requirements,
			listing.Location, listing.County, listing.RemoteType, listing.EmploymentType, listing.ExperienceLevel,
			listing.SalaryMin, listing.SalaryMax, listing.SalaryCurrency, listing.SalaryPeriod,
			skills, technologies,
			listing.SourcePlatform, listing.SourceURL, listing.ExternalID,
			listing.PostedDate, listing.FirstSeenAt, listing.LastUpdatedAt, listing.IsActive,
		).
		Suffix(`ON CONFLICT (source_platform, external_id, organization_id) DO UPDATE
		        SET last_updated_at = EXCLUDED.last_updated_at,
		            is_active = TRUE
		        RETURNING (xmax = 0)`).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build listing upsert: %w", err)
	}

	var created bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&created); err != nil {
		return false, fmt.Errorf("upsert listing: %w", err)
	}
	return created, nil
}

// DeleteInactiveBefore removes inactive listings untouched since cutoff.
func (r *ListingRepository) DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := builder.
		Delete("job_listings").
		Where(sq.Eq{"is_active": false}).
		Where(sq.Lt{"last_updated_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build retention delete: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete inactive listings: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return deleted, nil
}

// TopSkills unnests the skills arrays of active listings and aggregates
// demand counts with the average minimum salary per skill.
func (r *ListingRepository) TopSkills(ctx context.Context, limit int) ([]domain.SkillDemand, error) {
	query, args, err := builder.
		Select("s.skill", "COUNT(*) AS demand_count", "AVG(j.salary_min) AS avg_salary").
		From("job_listings j, jsonb_array_elements_text(j.skills) AS s(skill)").
		Where(sq.Eq{"j.is_active": true}).
		GroupBy("s.skill").
		OrderBy("demand_count DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build skill aggregation: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query skill demand: %w", err)
	}
	defer rows.Close()

	var demands []domain.SkillDemand
	for rows.Next() {
		var d domain.SkillDemand
		var avg sql.NullFloat64
		if err := rows.Scan(&d.Skill, &d.DemandCount, &avg); err != nil {
			return nil, fmt.Errorf("scan skill demand: %w", err)
		}
		if avg.Valid {
			d.AvgSalary = &avg.Float64
		}
		demands = append(demands, d)
	}
	return demands, rows.Err()
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
