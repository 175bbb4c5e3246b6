package storage

import (
	"context"
	"database/sql"
	"fmt"

	"JobScanner/internal/domain"
	"JobScanner/internal/ports"
)

// OrganizationRepository resolves organizations by exact name in Postgres.
type OrganizationRepository struct {
	db *sql.DB
}

var _ ports.OrganizationRepository = (*OrganizationRepository)(nil)

// NewOrganizationRepository wires a sql.DB implementation.
func NewOrganizationRepository(db *sql.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// GetOrCreate inserts the organization or, on a name conflict, returns
// the existing row. The no-op DO UPDATE makes RETURNING yield the row in
// both branches, so two concurrent creations of the same name resolve to
// a single id.
func (r *OrganizationRepository) GetOrCreate(ctx context.Context, name string, defaults domain.Organization) (domain.Organization, error) {
	query, args, err := builder.
		Insert("organizations").
		Columns("name", "industry", "size", "location").
		Values(name, defaults.Industry, defaults.Size, defaults.Location).
		Suffix(`ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		        RETURNING id, name, industry, size, location`).
		ToSql()
	if err != nil {
		return domain.Organization{}, fmt.Errorf("build organization upsert: %w", err)
	}

	var org domain.Organization
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&org.ID, &org.Name, &org.Industry, &org.Size, &org.Location); err != nil {
		return domain.Organization{}, fmt.Errorf("get or create organization: %w", err)
	}
	return org, nil
}
