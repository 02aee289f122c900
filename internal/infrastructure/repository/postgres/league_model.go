package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/citysports/league-registry/internal/domain/league"
)

type leagueTableModel struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"`
	Name        string         `db:"name"`
	Description string         `db:"description"`
	Location    string         `db:"location"`
	SportID     string         `db:"sport_public_id"`
	SkillID     sql.NullString `db:"skill_public_id"`
	SkillIDs    pq.StringArray `db:"skill_public_ids"`
	GymIDs      pq.StringArray `db:"gym_public_ids"`
	DayOfWeek   sql.NullInt64  `db:"day_of_week"`
	HideDay     bool           `db:"hide_day"`
	StartDate   *time.Time     `db:"start_date"`
	EndDate     *time.Time     `db:"end_date"`
	Year        string         `db:"year"`
	Cost        float64        `db:"cost"`
	MaxTeams    int            `db:"max_teams"`
	Active      bool           `db:"active"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	DeletedAt   *time.Time     `db:"deleted_at"`
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:          row.PublicID,
		Name:        row.Name,
		Description: row.Description,
		Location:    row.Location,
		SportID:     row.SportID,
		SkillID:     row.SkillID.String,
		SkillIDs:    []string(row.SkillIDs),
		GymIDs:      []string(row.GymIDs),
		DayOfWeek:   nullInt64ToIntPtr(row.DayOfWeek),
		HideDay:     row.HideDay,
		StartDate:   dateToString(row.StartDate),
		EndDate:     dateToString(row.EndDate),
		Year:        row.Year,
		Cost:        row.Cost,
		MaxTeams:    row.MaxTeams,
		Active:      row.Active,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func nullInt64ToIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func intPtrToNullInt64(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func dateToString(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format("2006-01-02")
}

func stringToDate(v string) *time.Time {
	parsed, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil
	}
	return &parsed
}

func stringToNullString(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}
