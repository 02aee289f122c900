package user

import "context"

// Repository describes user persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, userID string) (User, bool, error)
	// GetByIDs returns the users that exist; missing IDs are skipped.
	GetByIDs(ctx context.Context, userIDs []string) ([]User, error)
	SetTeamIDs(ctx context.Context, userID string, teamIDs []string) error
}
