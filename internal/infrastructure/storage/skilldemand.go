package storage

import (
	"context"
	"database/sql"
	"fmt"

	"JobScanner/internal/domain"
	"JobScanner/internal/ports"
)

// SkillDemandRepository stores the derived skill-demand table.
type SkillDemandRepository struct {
	db *sql.DB
}

var _ ports.SkillDemandRepository = (*SkillDemandRepository)(nil)

// NewSkillDemandRepository wires a sql.DB implementation.
func NewSkillDemandRepository(db *sql.DB) *SkillDemandRepository {
	return &SkillDemandRepository{db: db}
}

// Replace swaps the table contents for the given rows in one transaction
// so readers never observe a partially rebuilt table.
func (r *SkillDemandRepository) Replace(ctx context.Context, demands []domain.SkillDemand) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin skill demand replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM skill_demand`); err != nil {
		return fmt.Errorf("clear skill demand: %w", err)
	}

	if len(demands) > 0 {
		insert := builder.
			Insert("skill_demand").
			Columns("skill_name", "demand_count", "avg_salary")
		for _, d := range demands {
			insert = insert.Values(d.Skill, d.DemandCount, d.AvgSalary)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("build skill demand insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert skill demand: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit skill demand replace: %w", err)
	}
	return nil
}
