package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	// ListActiveByMember returns active teams where userID is the captain or
	// appears on the roster, newest first.
	ListActiveByMember(ctx context.Context, userID string) ([]Team, error)
	// UpdateRoster persists roster, captain and active-flag changes together.
	UpdateRoster(ctx context.Context, t Team) error
	Delete(ctx context.Context, teamID string) error
	CountByLeague(ctx context.Context, leagueID string) (int, error)
}
