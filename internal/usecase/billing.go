package usecase

import (
	"context"

	"github.com/citysports/league-registry/internal/infrastructure/billing/stripeapi"
)

// BillingProvider is the slice of the payment provider the services need.
// *stripeapi.Client satisfies it.
type BillingProvider interface {
	ListProducts(ctx context.Context) ([]stripeapi.Product, error)
	GetProductByLeague(ctx context.Context, leagueID string) (stripeapi.Product, bool, error)
	LinkProductToLeague(ctx context.Context, productID, leagueID string) error
	UnlinkProduct(ctx context.Context, productID string) error
	GetSubscriptionByUser(ctx context.Context, userID string) (stripeapi.Subscription, bool, error)
}
