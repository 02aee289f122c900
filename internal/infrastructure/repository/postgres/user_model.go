package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/citysports/league-registry/internal/domain/user"
)

type userTableModel struct {
	ID        int64          `db:"id"`
	PublicID  string         `db:"public_id"`
	Name      string         `db:"name"`
	Email     string         `db:"email"`
	Phone     string         `db:"phone"`
	IsAdmin   bool           `db:"is_admin"`
	TeamIDs   pq.StringArray `db:"team_public_ids"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

func userFromRow(row userTableModel) user.User {
	return user.User{
		ID:        row.PublicID,
		Name:      row.Name,
		Email:     row.Email,
		Phone:     row.Phone,
		IsAdmin:   row.IsAdmin,
		TeamIDs:   []string(row.TeamIDs),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
