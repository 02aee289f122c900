package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/citysports/league-registry/internal/domain/gym"
	"github.com/citysports/league-registry/internal/domain/league"
	"github.com/citysports/league-registry/internal/domain/payment"
	"github.com/citysports/league-registry/internal/domain/skill"
	"github.com/citysports/league-registry/internal/domain/sport"
	"github.com/citysports/league-registry/internal/domain/team"
	"github.com/citysports/league-registry/internal/domain/user"
	"github.com/citysports/league-registry/internal/infrastructure/billing/stripeapi"
	"github.com/citysports/league-registry/internal/infrastructure/repository/memory"
	"github.com/citysports/league-registry/internal/platform/logging"
)

func dashboardDay(day int) *int { return &day }

func newDashboardService(billing BillingProvider) *DashboardService {
	payments := memory.NewPaymentRepository([]payment.Payment{
		{
			ID:         "pay-volley",
			UserID:     "captain",
			TeamID:     "team-volley",
			LeagueID:   "league-volley",
			AmountDue:  520,
			AmountPaid: 120,
			Status:     payment.StatusPartial,
			DueDate:    time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:         "pay-misc",
			UserID:     "captain",
			LeagueID:   "league-badminton",
			AmountDue:  100,
			AmountPaid: 100,
			Status:     payment.StatusPaid,
			DueDate:    time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        "pay-other-user",
			UserID:    "someone-else",
			TeamID:    "team-x",
			LeagueID:  "league-volley",
			AmountDue: 999,
			Status:    payment.StatusPending,
			DueDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	})
	teams := memory.NewTeamRepository([]team.Team{
		{
			ID:           "team-volley",
			Name:         "The Spikers",
			LeagueID:     "league-volley",
			CaptainID:    "captain",
			Roster:       []string{"captain", "alice"},
			SkillLevelID: "skill-int",
			Active:       true,
			CreatedAt:    time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        "team-badminton",
			Name:      "Shuttle Crew",
			LeagueID:  "league-badminton",
			CaptainID: "alice",
			Roster:    []string{"alice", "captain"},
			Active:    true,
			CreatedAt: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        "team-inactive",
			Name:      "Gone Squad",
			LeagueID:  "league-volley",
			CaptainID: "captain",
			Roster:    []string{"captain"},
			Active:    false,
			CreatedAt: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		},
	}, payments)
	users := memory.NewUserRepository([]user.User{
		{ID: "captain", Name: "Dana Reyes", Email: "dana@example.com", TeamIDs: []string{"team-volley", "team-badminton"}},
		{ID: "alice", Name: "Alice Wu", Email: "alice@example.com", TeamIDs: []string{"team-volley", "team-badminton"}},
	})
	leagues := memory.NewLeagueRepository([]league.League{
		{
			ID:        "league-volley",
			Name:      "Monday Night Volleyball",
			SportID:   "sport-volley",
			SkillIDs:  []string{"skill-rec", "skill-int"},
			GymIDs:    []string{"gym-central"},
			DayOfWeek: dashboardDay(1),
			StartDate: "2026-01-12",
			EndDate:   "2026-03-30",
			Year:      "2026",
			Cost:      520,
			MaxTeams:  12,
			Active:    true,
		},
		{
			ID:       "league-badminton",
			Name:     "Mixed Badminton",
			SportID:  "sport-badminton",
			Cost:     180,
			MaxTeams: 16,
			Active:   true,
		},
	})
	sports := memory.NewSportRepository([]sport.Sport{
		{ID: "sport-volley", Name: "Volleyball", Active: true},
		{ID: "sport-badminton", Name: "Badminton", Active: true},
	})
	skills := memory.NewSkillRepository([]skill.Skill{
		{ID: "skill-rec", Name: "Recreational", SortOrder: 1},
		{ID: "skill-int", Name: "Intermediate", SortOrder: 2},
	})
	gyms := memory.NewGymRepository([]gym.Gym{
		{ID: "gym-central", Name: "Central Community Centre", Address: "125 Bay St", Active: true},
	})

	svc := NewDashboardService(teams, users, leagues, sports, skills, gyms, payments, billing, logging.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) }

	return svc
}

func TestDashboardLoad(t *testing.T) {
	svc := newDashboardService(&fakeBilling{})

	dashboard, err := svc.Load(context.Background(), user.Principal{UserID: "captain"})
	if err != nil {
		t.Fatalf("load dashboard failed: %v", err)
	}

	if len(dashboard.Teams) != 2 {
		t.Fatalf("team cards = %d, want 2 (inactive team excluded)", len(dashboard.Teams))
	}

	// Newest team first.
	if dashboard.Teams[0].Team.ID != "team-badminton" || dashboard.Teams[1].Team.ID != "team-volley" {
		t.Fatalf("card order = %s, %s", dashboard.Teams[0].Team.ID, dashboard.Teams[1].Team.ID)
	}

	volley := dashboard.Teams[1]
	if volley.SportName != "Volleyball" {
		t.Fatalf("sport name = %q", volley.SportName)
	}
	if volley.SkillName != "Intermediate" {
		t.Fatalf("team skill name = %q", volley.SkillName)
	}
	if len(volley.LeagueSkillNames) != 2 {
		t.Fatalf("league skill names = %v", volley.LeagueSkillNames)
	}
	if volley.CaptainName != "Dana Reyes" {
		t.Fatalf("captain name = %q", volley.CaptainName)
	}
	if !volley.IsCaptain {
		t.Fatal("captain flag not set for caller's team")
	}
	if len(volley.Roster) != 2 || volley.Roster[1].Email != "alice@example.com" {
		t.Fatalf("roster = %+v", volley.Roster)
	}
	if len(volley.Gyms) != 1 || volley.Gyms[0].Name != "Central Community Centre" {
		t.Fatalf("gyms = %+v", volley.Gyms)
	}
	if volley.DayLabel != "Monday" {
		t.Fatalf("day label = %q", volley.DayLabel)
	}
	if volley.Payment.ID != "pay-volley" || volley.Payment.Outstanding() != 400 {
		t.Fatalf("payment = %+v", volley.Payment)
	}

	badminton := dashboard.Teams[0]
	if badminton.IsCaptain {
		t.Fatal("captain flag set for team captained by someone else")
	}
	if badminton.DayLabel != "Day TBD" {
		t.Fatalf("day label without schedule = %q", badminton.DayLabel)
	}

	// No fee record for the badminton team yet: a virtual payment for the
	// full league cost stands in.
	if !badminton.Payment.IsVirtual() {
		t.Fatalf("expected virtual payment, got %+v", badminton.Payment)
	}
	if badminton.Payment.AmountDue != 180 || badminton.Payment.Outstanding() != 180 {
		t.Fatalf("virtual payment amounts = %+v", badminton.Payment)
	}
	if badminton.Payment.Status != payment.StatusPending {
		t.Fatalf("virtual payment status = %q", badminton.Payment.Status)
	}

	if dashboard.Stats.TeamCount != 2 || dashboard.Stats.CaptainCount != 1 {
		t.Fatalf("stats = %+v", dashboard.Stats)
	}

	// Outstanding balance comes from the summary, which only covers
	// persisted payments.
	if dashboard.Stats.OutstandingBalance != 400 {
		t.Fatalf("outstanding balance = %v, want 400", dashboard.Stats.OutstandingBalance)
	}
	if dashboard.Summary.TotalOutstanding != dashboard.Stats.OutstandingBalance {
		t.Fatal("stats outstanding diverged from summary")
	}
}

func TestDashboardLoadKeepsEarliestPaymentPerTeam(t *testing.T) {
	payments := memory.NewPaymentRepository([]payment.Payment{
		{
			ID:        "pay-first",
			UserID:    "captain",
			TeamID:    "team-volley",
			LeagueID:  "league-volley",
			AmountDue: 520,
			Status:    payment.StatusPending,
			DueDate:   time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        "pay-second",
			UserID:    "captain",
			TeamID:    "team-volley",
			LeagueID:  "league-volley",
			AmountDue: 50,
			Status:    payment.StatusPending,
			DueDate:   time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC),
		},
	})
	teams := memory.NewTeamRepository([]team.Team{
		{
			ID:        "team-volley",
			Name:      "The Spikers",
			LeagueID:  "league-volley",
			CaptainID: "captain",
			Roster:    []string{"captain"},
			Active:    true,
		},
	}, payments)
	users := memory.NewUserRepository([]user.User{
		{ID: "captain", Name: "Dana Reyes", Email: "dana@example.com", TeamIDs: []string{"team-volley"}},
	})
	leagues := memory.NewLeagueRepository([]league.League{
		{ID: "league-volley", Name: "Monday Night Volleyball", SportID: "sport-volley", Cost: 520, MaxTeams: 12, Active: true},
	})
	sports := memory.NewSportRepository([]sport.Sport{
		{ID: "sport-volley", Name: "Volleyball", Active: true},
	})
	skills := memory.NewSkillRepository(nil)
	gyms := memory.NewGymRepository(nil)

	svc := NewDashboardService(teams, users, leagues, sports, skills, gyms, payments, &fakeBilling{}, logging.NewNop())

	dashboard, err := svc.Load(context.Background(), user.Principal{UserID: "captain"})
	if err != nil {
		t.Fatalf("load dashboard failed: %v", err)
	}
	if len(dashboard.Teams) != 1 {
		t.Fatalf("team cards = %d, want 1", len(dashboard.Teams))
	}
	if dashboard.Teams[0].Payment.ID != "pay-first" {
		t.Fatalf("card payment = %q, want earliest due row pay-first", dashboard.Teams[0].Payment.ID)
	}
}

func TestDashboardLoadSubscriptionBanner(t *testing.T) {
	billing := &fakeBilling{
		subscriptions: map[string]stripeapi.Subscription{
			"captain": {ID: "sub-1", UserID: "captain", Status: "active", PlanName: "All Access"},
		},
	}
	svc := newDashboardService(billing)

	dashboard, err := svc.Load(context.Background(), user.Principal{UserID: "captain"})
	if err != nil {
		t.Fatalf("load dashboard failed: %v", err)
	}
	if dashboard.Subscription == nil || dashboard.Subscription.ID != "sub-1" {
		t.Fatalf("subscription = %+v", dashboard.Subscription)
	}
}

func TestDashboardLoadSurvivesBillingOutage(t *testing.T) {
	svc := newDashboardService(&fakeBilling{err: errBillingDown})

	dashboard, err := svc.Load(context.Background(), user.Principal{UserID: "captain"})
	if err != nil {
		t.Fatalf("billing outage took the dashboard down: %v", err)
	}
	if dashboard.Subscription != nil {
		t.Fatalf("subscription = %+v, want nil", dashboard.Subscription)
	}
	if len(dashboard.Teams) != 2 {
		t.Fatalf("team cards = %d", len(dashboard.Teams))
	}
}

func TestDashboardLoadEmpty(t *testing.T) {
	svc := newDashboardService(&fakeBilling{})

	dashboard, err := svc.Load(context.Background(), user.Principal{UserID: "nobody"})
	if err != nil {
		t.Fatalf("load dashboard failed: %v", err)
	}
	if len(dashboard.Teams) != 0 {
		t.Fatalf("team cards = %d, want 0", len(dashboard.Teams))
	}
	if dashboard.Stats.OutstandingBalance != 0 {
		t.Fatalf("outstanding balance = %v", dashboard.Stats.OutstandingBalance)
	}
}

func TestListPaymentsOrderedByDueDate(t *testing.T) {
	svc := newDashboardService(&fakeBilling{})

	rows, err := svc.ListPayments(context.Background(), user.Principal{UserID: "captain"})
	if err != nil {
		t.Fatalf("list payments failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("payments = %d, want 2", len(rows))
	}
	if rows[0].ID != "pay-misc" || rows[1].ID != "pay-volley" {
		t.Fatalf("order = %s, %s; want due date ascending", rows[0].ID, rows[1].ID)
	}
}

func TestPaymentSummary(t *testing.T) {
	svc := newDashboardService(&fakeBilling{})

	summary, err := svc.PaymentSummary(context.Background(), user.Principal{UserID: "captain"})
	if err != nil {
		t.Fatalf("payment summary failed: %v", err)
	}
	if summary.TotalDue != 620 || summary.TotalPaid != 220 || summary.TotalOutstanding != 400 {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.PendingCount != 1 {
		t.Fatalf("pending count = %d, want 1", summary.PendingCount)
	}
}
