package usecase

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/citysports/league-registry/internal/domain/payment"
	"github.com/citysports/league-registry/internal/domain/team"
	"github.com/citysports/league-registry/internal/domain/user"
	"github.com/citysports/league-registry/internal/infrastructure/repository/memory"
	"github.com/citysports/league-registry/internal/platform/logging"
)

type rosterFixture struct {
	teams    *memory.TeamRepository
	users    *memory.UserRepository
	payments *memory.PaymentRepository
	service  *RosterService
}

func newRosterFixture() rosterFixture {
	payments := memory.NewPaymentRepository([]payment.Payment{
		{
			ID:        "pay-1",
			UserID:    "captain",
			TeamID:    "team-1",
			LeagueID:  "league-1",
			AmountDue: 500,
			Status:    payment.StatusPending,
			DueDate:   time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        "pay-2",
			UserID:    "alice",
			TeamID:    "team-1",
			LeagueID:  "league-1",
			AmountDue: 500,
			Status:    payment.StatusPending,
			DueDate:   time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		},
	})
	teams := memory.NewTeamRepository([]team.Team{
		{
			ID:        "team-1",
			Name:      "The Spikers",
			LeagueID:  "league-1",
			CaptainID: "captain",
			Roster:    []string{"captain", "alice", "bob"},
			Active:    true,
		},
	}, payments)
	users := memory.NewUserRepository([]user.User{
		{ID: "captain", Name: "Dana", Email: "dana@example.com", TeamIDs: []string{"team-1", "team-9"}},
		{ID: "alice", Name: "Alice", Email: "alice@example.com", TeamIDs: []string{"team-1"}},
		{ID: "bob", Name: "Bob", Email: "bob@example.com", TeamIDs: []string{"team-1"}},
	})

	return rosterFixture{
		teams:    teams,
		users:    users,
		payments: payments,
		service:  NewRosterService(teams, users, payments, logging.NewNop()),
	}
}

func TestUnregisterRemovesMemberAndPayment(t *testing.T) {
	fx := newRosterFixture()
	ctx := context.Background()

	err := fx.service.Unregister(ctx, user.Principal{UserID: "alice"}, "pay-2")
	if err != nil {
		t.Fatalf("unregister failed: %v", err)
	}

	if _, exists, _ := fx.payments.GetByID(ctx, "pay-2"); exists {
		t.Fatal("payment still present after unregister")
	}

	updated, _, _ := fx.teams.GetByID(ctx, "team-1")
	if slices.Contains(updated.Roster, "alice") {
		t.Fatalf("alice still on roster: %v", updated.Roster)
	}
	if updated.CaptainID != "captain" {
		t.Fatalf("captain changed to %q", updated.CaptainID)
	}
	if !updated.Active {
		t.Fatal("team deactivated while members remain")
	}

	alice, _, _ := fx.users.GetByID(ctx, "alice")
	if slices.Contains(alice.TeamIDs, "team-1") {
		t.Fatalf("alice team list not reconciled: %v", alice.TeamIDs)
	}
}

func TestUnregisterCaptainTransfersCaptaincy(t *testing.T) {
	fx := newRosterFixture()
	ctx := context.Background()

	err := fx.service.Unregister(ctx, user.Principal{UserID: "captain"}, "pay-1")
	if err != nil {
		t.Fatalf("unregister failed: %v", err)
	}

	updated, _, _ := fx.teams.GetByID(ctx, "team-1")
	if updated.CaptainID != "alice" {
		t.Fatalf("captaincy passed to %q, want alice", updated.CaptainID)
	}
	if !updated.Active {
		t.Fatal("team deactivated while members remain")
	}

	captain, _, _ := fx.users.GetByID(ctx, "captain")
	if slices.Contains(captain.TeamIDs, "team-1") {
		t.Fatalf("captain team list not reconciled: %v", captain.TeamIDs)
	}
	if !slices.Contains(captain.TeamIDs, "team-9") {
		t.Fatalf("unrelated team dropped from list: %v", captain.TeamIDs)
	}
}

func TestUnregisterLastMemberDeactivatesTeam(t *testing.T) {
	payments := memory.NewPaymentRepository([]payment.Payment{
		{ID: "pay-solo", UserID: "captain", TeamID: "team-solo", LeagueID: "league-1", Status: payment.StatusPending},
	})
	teams := memory.NewTeamRepository([]team.Team{
		{ID: "team-solo", Name: "Solo", LeagueID: "league-1", CaptainID: "captain", Roster: []string{"captain"}, Active: true},
	}, payments)
	users := memory.NewUserRepository([]user.User{
		{ID: "captain", Email: "dana@example.com", TeamIDs: []string{"team-solo"}},
	})
	svc := NewRosterService(teams, users, payments, logging.NewNop())
	ctx := context.Background()

	if err := svc.Unregister(ctx, user.Principal{UserID: "captain"}, "pay-solo"); err != nil {
		t.Fatalf("unregister failed: %v", err)
	}

	updated, _, _ := teams.GetByID(ctx, "team-solo")
	if updated.Active {
		t.Fatal("team still active after roster drained")
	}
	if updated.CaptainID != "" {
		t.Fatalf("captain = %q, want empty", updated.CaptainID)
	}
}

func TestUnregisterRejectsOtherUsersPayment(t *testing.T) {
	fx := newRosterFixture()

	err := fx.service.Unregister(context.Background(), user.Principal{UserID: "bob"}, "pay-2")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestUnregisterAdminMayActForOthers(t *testing.T) {
	fx := newRosterFixture()
	ctx := context.Background()

	err := fx.service.Unregister(ctx, user.Principal{UserID: "admin", IsAdmin: true}, "pay-2")
	if err != nil {
		t.Fatalf("admin unregister failed: %v", err)
	}

	updated, _, _ := fx.teams.GetByID(ctx, "team-1")
	if slices.Contains(updated.Roster, "alice") {
		t.Fatal("alice still on roster after admin unregister")
	}
}

func TestUnregisterUnknownPayment(t *testing.T) {
	fx := newRosterFixture()

	err := fx.service.Unregister(context.Background(), user.Principal{UserID: "alice"}, "pay-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLeaveTeamKeepsPayments(t *testing.T) {
	fx := newRosterFixture()
	ctx := context.Background()

	if err := fx.service.LeaveTeam(ctx, user.Principal{UserID: "alice"}, "team-1"); err != nil {
		t.Fatalf("leave team failed: %v", err)
	}

	updated, _, _ := fx.teams.GetByID(ctx, "team-1")
	if slices.Contains(updated.Roster, "alice") {
		t.Fatalf("alice still on roster: %v", updated.Roster)
	}

	// Leaving a team is not unregistering; the fee record stays.
	if _, exists, _ := fx.payments.GetByID(ctx, "pay-2"); !exists {
		t.Fatal("payment removed by leave-team")
	}
}

func TestLeaveTeamByCaptainTransfersCaptaincy(t *testing.T) {
	fx := newRosterFixture()
	ctx := context.Background()

	if err := fx.service.LeaveTeam(ctx, user.Principal{UserID: "captain"}, "team-1"); err != nil {
		t.Fatalf("leave team failed: %v", err)
	}

	updated, _, _ := fx.teams.GetByID(ctx, "team-1")
	if updated.CaptainID != "alice" {
		t.Fatalf("captaincy passed to %q, want alice", updated.CaptainID)
	}
}

func TestLeaveTeamRejectsNonMember(t *testing.T) {
	fx := newRosterFixture()

	err := fx.service.LeaveTeam(context.Background(), user.Principal{UserID: "stranger"}, "team-1")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDeleteTeamCascadesPaymentsAndReconcilesMembers(t *testing.T) {
	fx := newRosterFixture()
	ctx := context.Background()

	result, err := fx.service.DeleteTeam(ctx, user.Principal{UserID: "captain"}, "team-1")
	if err != nil {
		t.Fatalf("delete team failed: %v", err)
	}
	if result.MembersUpdated != 3 {
		t.Fatalf("members updated = %d, want 3", result.MembersUpdated)
	}
	if result.SkippedMembers != 0 {
		t.Fatalf("skipped members = %d, want 0", result.SkippedMembers)
	}

	if _, exists, _ := fx.teams.GetByID(ctx, "team-1"); exists {
		t.Fatal("team still present after delete")
	}
	for _, paymentID := range []string{"pay-1", "pay-2"} {
		if _, exists, _ := fx.payments.GetByID(ctx, paymentID); exists {
			t.Fatalf("payment %s survived team deletion", paymentID)
		}
	}
	for _, userID := range []string{"captain", "alice", "bob"} {
		u, _, _ := fx.users.GetByID(ctx, userID)
		if slices.Contains(u.TeamIDs, "team-1") {
			t.Fatalf("user %s still references deleted team: %v", userID, u.TeamIDs)
		}
	}
}

func TestDeleteTeamSkipsMissingMembers(t *testing.T) {
	payments := memory.NewPaymentRepository(nil)
	teams := memory.NewTeamRepository([]team.Team{
		{ID: "team-1", Name: "Ghosts", LeagueID: "league-1", CaptainID: "captain", Roster: []string{"captain", "deleted-user"}, Active: true},
	}, payments)
	users := memory.NewUserRepository([]user.User{
		{ID: "captain", Email: "dana@example.com", TeamIDs: []string{"team-1"}},
	})
	svc := NewRosterService(teams, users, payments, logging.NewNop())

	result, err := svc.DeleteTeam(context.Background(), user.Principal{UserID: "captain"}, "team-1")
	if err != nil {
		t.Fatalf("delete team failed: %v", err)
	}
	if result.MembersUpdated != 1 {
		t.Fatalf("members updated = %d, want 1", result.MembersUpdated)
	}
	if result.SkippedMembers != 1 {
		t.Fatalf("skipped members = %d, want 1", result.SkippedMembers)
	}

	if _, exists, _ := teams.GetByID(context.Background(), "team-1"); exists {
		t.Fatal("deletion blocked by missing member")
	}
}

func TestDeleteTeamRejectsNonCaptain(t *testing.T) {
	fx := newRosterFixture()

	_, err := fx.service.DeleteTeam(context.Background(), user.Principal{UserID: "alice"}, "team-1")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestDeleteTeamAdminOverride(t *testing.T) {
	fx := newRosterFixture()

	_, err := fx.service.DeleteTeam(context.Background(), user.Principal{UserID: "admin", IsAdmin: true}, "team-1")
	if err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
}
