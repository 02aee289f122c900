package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/citysports/league-registry/internal/domain/user"
	"github.com/citysports/league-registry/internal/infrastructure/repository/memory"
	"github.com/citysports/league-registry/internal/platform/logging"
)

func TestMe(t *testing.T) {
	users := memory.NewUserRepository([]user.User{
		{ID: "user-1", Name: "Dana Reyes", Email: "dana@example.com", TeamIDs: []string{"team-1", "team-2"}},
	})
	svc := NewProfileService(users, logging.NewNop())

	profile, err := svc.Me(context.Background(), user.Principal{UserID: "user-1", Email: "dana@example.com"})
	if err != nil {
		t.Fatalf("me failed: %v", err)
	}
	if profile.User.Name != "Dana Reyes" {
		t.Fatalf("name = %q", profile.User.Name)
	}
	if profile.TeamCount != 2 {
		t.Fatalf("team count = %d", profile.TeamCount)
	}
}

func TestMeTokenAdminFlagWins(t *testing.T) {
	users := memory.NewUserRepository([]user.User{
		{ID: "user-1", Name: "Dana Reyes", IsAdmin: true},
	})
	svc := NewProfileService(users, logging.NewNop())

	profile, err := svc.Me(context.Background(), user.Principal{UserID: "user-1", IsAdmin: false})
	if err != nil {
		t.Fatalf("me failed: %v", err)
	}
	if profile.User.IsAdmin {
		t.Fatal("stale profile admin flag overrode the token")
	}
}

func TestMeWithoutProfileRow(t *testing.T) {
	svc := NewProfileService(memory.NewUserRepository(nil), logging.NewNop())

	profile, err := svc.Me(context.Background(), user.Principal{
		UserID:  "user-new",
		Email:   "new@example.com",
		IsAdmin: true,
	})
	if err != nil {
		t.Fatalf("me failed: %v", err)
	}
	if profile.User.ID != "user-new" || profile.User.Email != "new@example.com" || !profile.User.IsAdmin {
		t.Fatalf("minimal profile = %+v", profile.User)
	}
	if profile.TeamCount != 0 {
		t.Fatalf("team count = %d", profile.TeamCount)
	}
}

func TestMeRequiresPrincipal(t *testing.T) {
	svc := NewProfileService(memory.NewUserRepository(nil), logging.NewNop())

	_, err := svc.Me(context.Background(), user.Principal{})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
