package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/citysports/league-registry/internal/domain/gym"
	qb "github.com/citysports/league-registry/internal/platform/querybuilder"
)

type GymRepository struct {
	db *sqlx.DB
}

func NewGymRepository(db *sqlx.DB) *GymRepository {
	return &GymRepository{db: db}
}

func (r *GymRepository) ListActive(ctx context.Context) ([]gym.Gym, error) {
	query, args, err := qb.Select("*").From("gyms").
		Where(
			qb.Eq("active", true),
			qb.IsNull("deleted_at"),
		).
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select active gyms query: %w", err)
	}

	var rows []gymTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select active gyms: %w", err)
	}

	out := make([]gym.Gym, 0, len(rows))
	for _, row := range rows {
		out = append(out, gymFromRow(row))
	}

	return out, nil
}

func (r *GymRepository) GetByIDs(ctx context.Context, gymIDs []string) ([]gym.Gym, error) {
	if len(gymIDs) == 0 {
		return nil, nil
	}

	values := make([]any, 0, len(gymIDs))
	for _, id := range gymIDs {
		values = append(values, id)
	}

	query, args, err := qb.Select("*").From("gyms").
		Where(
			qb.In("public_id", values),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get gyms by ids query: %w", err)
	}

	var rows []gymTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get gyms by ids: %w", err)
	}

	byID := make(map[string]gym.Gym, len(rows))
	for _, row := range rows {
		byID[row.PublicID] = gymFromRow(row)
	}

	out := make([]gym.Gym, 0, len(rows))
	for _, id := range gymIDs {
		if g, ok := byID[id]; ok {
			out = append(out, g)
		}
	}

	return out, nil
}

func gymFromRow(row gymTableModel) gym.Gym {
	return gym.Gym{
		ID:           row.PublicID,
		Name:         row.Name,
		Address:      row.Address,
		Instructions: row.Instructions,
		Active:       row.Active,
	}
}
