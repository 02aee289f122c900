package skill

import "context"

// Repository describes skill persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Skill, error)
	GetByID(ctx context.Context, skillID string) (Skill, bool, error)
}
