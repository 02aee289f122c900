package payment

import "context"

// Repository describes payment persistence needs from use cases. Deleting a
// team removes its payments at the store level, so there is no per-team
// delete here.
type Repository interface {
	GetByID(ctx context.Context, paymentID string) (Payment, bool, error)
	// ListByUser returns the user's payments ordered by due date ascending.
	ListByUser(ctx context.Context, userID string) ([]Payment, error)
	Delete(ctx context.Context, paymentID string) error
	SummaryByUser(ctx context.Context, userID string) (Summary, error)
}
