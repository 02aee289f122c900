package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/citysports/league-registry/internal/infrastructure/repository/memory"
	qb "github.com/citysports/league-registry/internal/platform/querybuilder"
)

const seedConflictSuffix = "ON CONFLICT (public_id) DO NOTHING"

// BootstrapSeed loads the development fixtures into an empty database so a
// fresh local stack has something to render. A database that already holds
// leagues is left alone.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM leagues WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count leagues for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, s := range memory.SeedSports() {
		if err := seedExec(ctx, tx, qb.InsertInto("sports").
			Columns("public_id", "name", "active").
			Values(s.ID, s.Name, s.Active)); err != nil {
			return fmt.Errorf("seed sport %s: %w", s.ID, err)
		}
	}

	for _, s := range memory.SeedSkills() {
		if err := seedExec(ctx, tx, qb.InsertInto("skills").
			Columns("public_id", "name", "sort_order").
			Values(s.ID, s.Name, s.SortOrder)); err != nil {
			return fmt.Errorf("seed skill %s: %w", s.ID, err)
		}
	}

	for _, g := range memory.SeedGyms() {
		if err := seedExec(ctx, tx, qb.InsertInto("gyms").
			Columns("public_id", "name", "address", "instructions", "active").
			Values(g.ID, g.Name, g.Address, g.Instructions, g.Active)); err != nil {
			return fmt.Errorf("seed gym %s: %w", g.ID, err)
		}
	}

	for _, l := range memory.SeedLeagues() {
		if err := seedExec(ctx, tx, qb.InsertInto("leagues").
			Columns("public_id", "name", "description", "location", "sport_public_id", "skill_public_id",
				"skill_public_ids", "gym_public_ids", "day_of_week", "hide_day", "start_date", "end_date",
				"year", "cost", "max_teams", "active").
			Values(l.ID, l.Name, l.Description, l.Location, l.SportID, stringToNullString(l.SkillID),
				pq.Array(l.SkillIDs), pq.Array(l.GymIDs), intPtrToNullInt64(l.DayOfWeek), l.HideDay,
				stringToDate(l.StartDate), stringToDate(l.EndDate),
				l.Year, l.Cost, l.MaxTeams, l.Active)); err != nil {
			return fmt.Errorf("seed league %s: %w", l.ID, err)
		}
	}

	for _, u := range memory.SeedUsers() {
		if err := seedExec(ctx, tx, qb.InsertInto("users").
			Columns("public_id", "name", "email", "phone", "is_admin", "team_public_ids").
			Values(u.ID, u.Name, u.Email, u.Phone, u.IsAdmin, pq.Array(u.TeamIDs))); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}

	for _, t := range memory.SeedTeams() {
		if err := seedExec(ctx, tx, qb.InsertInto("teams").
			Columns("public_id", "name", "league_public_id", "captain_public_id", "roster", "skill_public_id", "active").
			Values(t.ID, t.Name, t.LeagueID, stringToNullString(t.CaptainID), pq.Array(t.Roster),
				stringToNullString(t.SkillLevelID), t.Active)); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}

	for _, p := range memory.SeedPayments() {
		if err := seedExec(ctx, tx, qb.InsertInto("league_payments").
			Columns("public_id", "user_public_id", "team_public_id", "league_public_id",
				"amount_due", "amount_paid", "status", "due_date", "payment_method", "notes").
			Values(p.ID, p.UserID, stringToNullString(p.TeamID), p.LeagueID,
				p.AmountDue, p.AmountPaid, string(p.Status), p.DueDate,
				stringToNullString(p.PaymentMethod), stringToNullString(p.Notes))); err != nil {
			return fmt.Errorf("seed payment %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}

func seedExec(ctx context.Context, tx *sqlx.Tx, builder *qb.InsertBuilder) error {
	query, args, err := builder.Suffix(seedConflictSuffix).ToSQL()
	if err != nil {
		return fmt.Errorf("build seed query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return nil
}
