package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/citysports/league-registry/internal/domain/team"
)

type teamTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	Name         string         `db:"name"`
	LeagueID     string         `db:"league_public_id"`
	CaptainID    sql.NullString `db:"captain_public_id"`
	Roster       pq.StringArray `db:"roster"`
	SkillLevelID sql.NullString `db:"skill_public_id"`
	Active       bool           `db:"active"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    *time.Time     `db:"deleted_at"`
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:           row.PublicID,
		Name:         row.Name,
		LeagueID:     row.LeagueID,
		CaptainID:    row.CaptainID.String,
		Roster:       []string(row.Roster),
		SkillLevelID: row.SkillLevelID.String,
		Active:       row.Active,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
