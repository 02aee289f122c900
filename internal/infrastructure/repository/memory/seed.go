package memory

import (
	"time"

	"github.com/citysports/league-registry/internal/domain/gym"
	"github.com/citysports/league-registry/internal/domain/league"
	"github.com/citysports/league-registry/internal/domain/payment"
	"github.com/citysports/league-registry/internal/domain/skill"
	"github.com/citysports/league-registry/internal/domain/sport"
	"github.com/citysports/league-registry/internal/domain/team"
	"github.com/citysports/league-registry/internal/domain/user"
)

// Seed data for local development without a database. IDs are stable so the
// frontend can hardcode them in fixtures.
const (
	SportIDVolleyball = "sport-volleyball"
	SportIDBadminton  = "sport-badminton"

	LeagueIDVolleyballMonday = "league-volleyball-monday"
	LeagueIDBadmintonMixed   = "league-badminton-mixed"

	UserIDCaptain = "user-captain"
	UserIDPlayer  = "user-player"
	UserIDAdmin   = "user-admin"
)

func seedDay(day int) *int { return &day }

func SeedSports() []sport.Sport {
	return []sport.Sport{
		{ID: SportIDVolleyball, Name: "Volleyball", Active: true},
		{ID: SportIDBadminton, Name: "Badminton", Active: true},
	}
}

func SeedSkills() []skill.Skill {
	return []skill.Skill{
		{ID: "skill-rec", Name: "Recreational", SortOrder: 1},
		{ID: "skill-int", Name: "Intermediate", SortOrder: 2},
		{ID: "skill-comp", Name: "Competitive", SortOrder: 3},
	}
}

func SeedGyms() []gym.Gym {
	return []gym.Gym{
		{ID: "gym-central", Name: "Central Community Centre", Address: "125 Bay St", Instructions: "Use the side entrance after 6pm.", Active: true},
		{ID: "gym-eastside", Name: "Eastside Fieldhouse", Address: "40 Pape Ave", Active: true},
		{ID: "gym-closed", Name: "Old Armoury", Address: "1 Fort York Blvd", Active: false},
	}
}

func SeedLeagues() []league.League {
	return []league.League{
		{
			ID:          LeagueIDVolleyballMonday,
			Name:        "Monday Night Volleyball",
			Description: "6v6 coed volleyball, two matches a night.",
			Location:    "Downtown",
			SportID:     SportIDVolleyball,
			SkillID:     "skill-int",
			SkillIDs:    []string{"skill-rec", "skill-int"},
			GymIDs:      []string{"gym-central"},
			DayOfWeek:   seedDay(1),
			StartDate:   "2026-01-12",
			EndDate:     "2026-03-30",
			Year:        "2026",
			Cost:        520,
			MaxTeams:    12,
			Active:      true,
		},
		{
			ID:          LeagueIDBadmintonMixed,
			Name:        "Mixed Badminton Doubles",
			Description: "Rotating doubles ladder.",
			Location:    "East End",
			SportID:     SportIDBadminton,
			SkillID:     "skill-rec",
			SkillIDs:    []string{"skill-rec"},
			GymIDs:      []string{"gym-eastside"},
			HideDay:     true,
			StartDate:   "2026-02-01",
			EndDate:     "2026-04-26",
			Year:        "2026",
			Cost:        180,
			MaxTeams:    16,
			Active:      true,
		},
	}
}

func SeedUsers() []user.User {
	return []user.User{
		{ID: UserIDCaptain, Name: "Dana Reyes", Email: "dana@example.com", TeamIDs: []string{"team-spikers"}},
		{ID: UserIDPlayer, Name: "Sam Okafor", Email: "sam@example.com", TeamIDs: []string{"team-spikers"}},
		{ID: UserIDAdmin, Name: "Site Admin", Email: "admin@example.com", IsAdmin: true},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{
			ID:           "team-spikers",
			Name:         "The Spikers",
			LeagueID:     LeagueIDVolleyballMonday,
			CaptainID:    UserIDCaptain,
			Roster:       []string{UserIDCaptain, UserIDPlayer},
			SkillLevelID: "skill-int",
			Active:       true,
			CreatedAt:    time.Date(2025, 11, 3, 18, 0, 0, 0, time.UTC),
		},
	}
}

func SeedPayments() []payment.Payment {
	return []payment.Payment{
		{
			ID:        "pay-spikers-2026",
			UserID:    UserIDCaptain,
			TeamID:    "team-spikers",
			LeagueID:  LeagueIDVolleyballMonday,
			AmountDue: 520,
			Status:    payment.StatusPending,
			DueDate:   time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
			CreatedAt: time.Date(2025, 11, 3, 18, 0, 0, 0, time.UTC),
		},
	}
}
