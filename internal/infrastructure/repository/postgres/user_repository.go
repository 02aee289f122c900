package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/citysports/league-registry/internal/domain/user"
	qb "github.com/citysports/league-registry/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (user.User, bool, error) {
	query, args, err := qb.Select("*").From("users").
		Where(
			qb.Eq("public_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user by id query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user by id: %w", err)
	}

	return userFromRow(row), true, nil
}

func (r *UserRepository) GetByIDs(ctx context.Context, userIDs []string) ([]user.User, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	values := make([]any, 0, len(userIDs))
	for _, id := range userIDs {
		values = append(values, id)
	}

	query, args, err := qb.Select("*").From("users").
		Where(
			qb.In("public_id", values),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get users by ids query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get users by ids: %w", err)
	}

	byID := make(map[string]user.User, len(rows))
	for _, row := range rows {
		byID[row.PublicID] = userFromRow(row)
	}

	// Preserve the caller's order; missing IDs are skipped.
	out := make([]user.User, 0, len(rows))
	for _, id := range userIDs {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}

	return out, nil
}

func (r *UserRepository) SetTeamIDs(ctx context.Context, userID string, teamIDs []string) error {
	query, args, err := qb.Update("users").
		Set("team_public_ids", pq.Array(teamIDs)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set user team ids query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set user team ids: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set user team ids rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("set user team ids: user %s not found", userID)
	}

	return nil
}
