package gym

import "context"

// Repository describes gym persistence needs from use cases.
type Repository interface {
	// ListActive returns active gyms ordered by name.
	ListActive(ctx context.Context) ([]Gym, error)
	// GetByIDs returns the gyms that exist; missing IDs are skipped.
	GetByIDs(ctx context.Context, gymIDs []string) ([]Gym, error)
}
