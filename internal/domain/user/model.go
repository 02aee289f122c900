package user

import (
	"fmt"
	"time"
)

// User is a registered account. TeamIDs mirrors team membership so account
// screens can list teams without scanning every roster; roster mutations
// must keep it reconciled.
type User struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	IsAdmin   bool
	TeamIDs   []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if u.Email == "" {
		return fmt.Errorf("user email is required")
	}

	return nil
}

// WithoutTeam returns the user's team list with teamID filtered out.
func (u User) WithoutTeam(teamID string) []string {
	out := make([]string, 0, len(u.TeamIDs))
	for _, id := range u.TeamIDs {
		if id != teamID {
			out = append(out, id)
		}
	}
	return out
}
