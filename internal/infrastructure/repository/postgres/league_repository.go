package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/citysports/league-registry/internal/domain/league"
	qb "github.com/citysports/league-registry/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.IsNull("deleted_at")).
		OrderBy("start_date NULLS LAST", "name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(
			qb.Eq("public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by id query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by id: %w", err)
	}

	return leagueFromRow(row), true, nil
}

func (r *LeagueRepository) Update(ctx context.Context, l league.League) error {
	query, args, err := qb.Update("leagues").
		Set("name", l.Name).
		Set("description", l.Description).
		Set("location", l.Location).
		Set("sport_public_id", l.SportID).
		Set("skill_public_id", stringToNullString(l.SkillID)).
		Set("skill_public_ids", pq.Array(l.SkillIDs)).
		Set("gym_public_ids", pq.Array(l.GymIDs)).
		Set("day_of_week", intPtrToNullInt64(l.DayOfWeek)).
		Set("hide_day", l.HideDay).
		Set("start_date", stringToDate(l.StartDate)).
		Set("end_date", stringToDate(l.EndDate)).
		Set("year", l.Year).
		Set("cost", l.Cost).
		Set("max_teams", l.MaxTeams).
		Set("active", l.Active).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", l.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update league query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update league: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update league rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update league: league %s not found", l.ID)
	}

	return nil
}
