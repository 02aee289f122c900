package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/citysports/league-registry/internal/domain/team"
	qb "github.com/citysports/league-registry/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err) {
			return r.getByIDLiteral(ctx, teamID)
		}
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) getByIDLiteral(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.EqLiteral("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team literal fallback query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team literal fallback: %w", err)
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) ListActiveByMember(ctx context.Context, userID string) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("active", true),
			qb.IsNull("deleted_at"),
			qb.Or(
				qb.Eq("captain_public_id", userID),
				qb.Contains("roster", pq.Array([]string{userID})),
			),
		).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams by member query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams by member: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *TeamRepository) UpdateRoster(ctx context.Context, t team.Team) error {
	query, args, err := qb.Update("teams").
		Set("captain_public_id", stringToNullString(t.CaptainID)).
		Set("roster", pq.Array(t.Roster)).
		Set("active", t.Active).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", t.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team roster query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update team roster: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update team roster rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update team roster: team %s not found", t.ID)
	}

	return nil
}

// Delete removes the team row. The league_payments foreign key cascades, so
// the team's payments disappear with it.
func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	query, args, err := qb.DeleteFrom("teams").
		Where(qb.Eq("public_id", teamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}

	return nil
}

func (r *TeamRepository) CountByLeague(ctx context.Context, leagueID string) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("teams").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("active", true),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count teams by league query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count teams by league: %w", err)
	}

	return count, nil
}
