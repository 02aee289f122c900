package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/citysports/league-registry/internal/domain/skill"
	qb "github.com/citysports/league-registry/internal/platform/querybuilder"
)

type SkillRepository struct {
	db *sqlx.DB
}

func NewSkillRepository(db *sqlx.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

func (r *SkillRepository) List(ctx context.Context) ([]skill.Skill, error) {
	query, args, err := qb.Select("*").From("skills").
		Where(qb.IsNull("deleted_at")).
		OrderBy("sort_order", "name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select skills query: %w", err)
	}

	var rows []skillTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select skills: %w", err)
	}

	out := make([]skill.Skill, 0, len(rows))
	for _, row := range rows {
		out = append(out, skill.Skill{
			ID:        row.PublicID,
			Name:      row.Name,
			SortOrder: row.SortOrder,
		})
	}

	return out, nil
}

func (r *SkillRepository) GetByID(ctx context.Context, skillID string) (skill.Skill, bool, error) {
	query, args, err := qb.Select("*").From("skills").
		Where(
			qb.Eq("public_id", skillID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return skill.Skill{}, false, fmt.Errorf("build get skill by id query: %w", err)
	}

	var row skillTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return skill.Skill{}, false, nil
		}
		return skill.Skill{}, false, fmt.Errorf("get skill by id: %w", err)
	}

	return skill.Skill{
		ID:        row.PublicID,
		Name:      row.Name,
		SortOrder: row.SortOrder,
	}, true, nil
}
