package team

import (
	"fmt"
	"slices"
	"time"
)

// Team is a registered group of players inside one league. CaptainID is
// empty when the team has no captain; deactivated teams always have an
// empty captain, but active teams may lack one too.
type Team struct {
	ID           string
	Name         string
	LeagueID     string
	CaptainID    string
	Roster       []string
	SkillLevelID string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.LeagueID == "" {
		return fmt.Errorf("team league id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// HasMember reports whether userID is on the team either as captain or as a
// roster entry.
func (t Team) HasMember(userID string) bool {
	if t.CaptainID == userID && userID != "" {
		return true
	}
	return slices.Contains(t.Roster, userID)
}

// RemoveFromRoster returns a copy of the team with userID taken off the
// roster. When the departing user is the captain, captaincy passes to the
// first remaining roster entry; whenever the roster drains completely the
// team is deactivated and left without a captain, no matter who departed.
// The second return value is false when userID was not on the roster at all.
func (t Team) RemoveFromRoster(userID string) (Team, bool) {
	idx := slices.Index(t.Roster, userID)
	if idx < 0 && t.CaptainID != userID {
		return t, false
	}

	updated := t
	updated.Roster = make([]string, 0, len(t.Roster))
	for _, id := range t.Roster {
		if id != userID {
			updated.Roster = append(updated.Roster, id)
		}
	}

	if len(updated.Roster) == 0 {
		updated.CaptainID = ""
		updated.Active = false
	} else if t.CaptainID == userID {
		updated.CaptainID = updated.Roster[0]
	}

	return updated, true
}
