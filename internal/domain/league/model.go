package league

import (
	"fmt"
	"time"
)

var dayNames = [7]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// League is a registrable season offering for one sport at one or more gyms.
// StartDate and EndDate are calendar dates in YYYY-MM-DD form; DayOfWeek is
// 0=Sunday..6=Saturday and nil when the schedule day is not decided yet.
type League struct {
	ID          string
	Name        string
	Description string
	Location    string
	SportID     string
	SkillID     string
	SkillIDs    []string
	GymIDs      []string
	DayOfWeek   *int
	HideDay     bool
	StartDate   string
	EndDate     string
	Year        string
	Cost        float64
	MaxTeams    int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.SportID == "" {
		return fmt.Errorf("league sport id is required")
	}
	if l.DayOfWeek != nil && (*l.DayOfWeek < 0 || *l.DayOfWeek > 6) {
		return fmt.Errorf("league day of week must be between 0 and 6")
	}
	if l.Cost < 0 {
		return fmt.Errorf("league cost cannot be negative")
	}
	if l.MaxTeams <= 0 {
		return fmt.Errorf("league max teams must be positive")
	}

	return nil
}

// DayName renders the scheduled weekday for display. Unset or out-of-range
// days come back as "Day TBD".
func (l League) DayName() string {
	if l.DayOfWeek == nil {
		return "Day TBD"
	}
	day := *l.DayOfWeek
	if day < 0 || day >= len(dayNames) {
		return "Day TBD"
	}
	return dayNames[day]
}

// ScheduleLabel renders the season window for display. When HideDay is set
// only month and year are shown so tentative schedules do not promise an
// exact start day.
func (l League) ScheduleLabel() string {
	start, err := time.Parse("2006-01-02", l.StartDate)
	if err != nil {
		return l.Year
	}

	if l.HideDay {
		return start.Format("January 2006")
	}

	end, err := time.Parse("2006-01-02", l.EndDate)
	if err != nil {
		return start.Format("Jan 2, 2006")
	}

	return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
}

// SpotsRemaining clamps at zero so over-subscribed leagues read as full.
func (l League) SpotsRemaining(teamCount int) int {
	remaining := l.MaxTeams - teamCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SpotsText is the availability badge shown on the league catalog.
func SpotsText(spots int) string {
	switch {
	case spots == 0:
		return "Full"
	case spots == 1:
		return "1 spot left"
	default:
		return fmt.Sprintf("%d spots left", spots)
	}
}
