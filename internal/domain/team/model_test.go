package team

import (
	"slices"
	"testing"
)

func TestRemoveFromRosterPlainMember(t *testing.T) {
	original := Team{
		ID:        "team-1",
		CaptainID: "captain",
		Roster:    []string{"captain", "alice", "bob"},
		Active:    true,
	}

	updated, changed := original.RemoveFromRoster("alice")
	if !changed {
		t.Fatal("expected removal to report a change")
	}
	if updated.CaptainID != "captain" {
		t.Fatalf("captain changed to %q, want unchanged", updated.CaptainID)
	}
	if !updated.Active {
		t.Fatal("team deactivated on non-captain removal")
	}
	if !slices.Equal(updated.Roster, []string{"captain", "bob"}) {
		t.Fatalf("roster = %v", updated.Roster)
	}
	if !slices.Equal(original.Roster, []string{"captain", "alice", "bob"}) {
		t.Fatalf("original roster mutated: %v", original.Roster)
	}
}

func TestRemoveFromRosterCaptainTransfers(t *testing.T) {
	original := Team{
		ID:        "team-1",
		CaptainID: "captain",
		Roster:    []string{"captain", "alice", "bob"},
		Active:    true,
	}

	updated, changed := original.RemoveFromRoster("captain")
	if !changed {
		t.Fatal("expected removal to report a change")
	}
	if updated.CaptainID != "alice" {
		t.Fatalf("captaincy passed to %q, want first remaining entry alice", updated.CaptainID)
	}
	if !updated.Active {
		t.Fatal("team deactivated while roster still has members")
	}
	if !slices.Equal(updated.Roster, []string{"alice", "bob"}) {
		t.Fatalf("roster = %v", updated.Roster)
	}
}

func TestRemoveFromRosterLastMemberDeactivates(t *testing.T) {
	original := Team{
		ID:        "team-1",
		CaptainID: "captain",
		Roster:    []string{"captain"},
		Active:    true,
	}

	updated, changed := original.RemoveFromRoster("captain")
	if !changed {
		t.Fatal("expected removal to report a change")
	}
	if updated.Active {
		t.Fatal("team still active after roster drained")
	}
	if updated.CaptainID != "" {
		t.Fatalf("captain = %q, want empty", updated.CaptainID)
	}
	if len(updated.Roster) != 0 {
		t.Fatalf("roster = %v, want empty", updated.Roster)
	}
}

func TestRemoveFromRosterLastMemberDeactivatesCaptainless(t *testing.T) {
	original := Team{
		ID:     "team-1",
		Roster: []string{"bea"},
		Active: true,
	}

	updated, changed := original.RemoveFromRoster("bea")
	if !changed {
		t.Fatal("expected removal to report a change")
	}
	if updated.Active {
		t.Fatal("team still active after roster drained")
	}
	if updated.CaptainID != "" {
		t.Fatalf("captain = %q, want empty", updated.CaptainID)
	}
	if len(updated.Roster) != 0 {
		t.Fatalf("roster = %v, want empty", updated.Roster)
	}
}

func TestRemoveFromRosterUnknownUser(t *testing.T) {
	original := Team{
		ID:        "team-1",
		CaptainID: "captain",
		Roster:    []string{"captain", "alice"},
		Active:    true,
	}

	updated, changed := original.RemoveFromRoster("stranger")
	if changed {
		t.Fatal("removal of unknown user reported a change")
	}
	if !slices.Equal(updated.Roster, original.Roster) {
		t.Fatalf("roster = %v, want untouched", updated.Roster)
	}
}

func TestHasMember(t *testing.T) {
	tm := Team{CaptainID: "captain", Roster: []string{"captain", "alice"}}
	if !tm.HasMember("captain") {
		t.Fatal("captain not reported as member")
	}
	if !tm.HasMember("alice") {
		t.Fatal("roster entry not reported as member")
	}
	if tm.HasMember("stranger") {
		t.Fatal("stranger reported as member")
	}
	if tm.HasMember("") {
		t.Fatal("empty user id reported as member")
	}
}
