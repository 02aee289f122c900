// Package localbilling is an in-memory stand-in for the payment provider,
// used in local development when no provider credentials are configured.
package localbilling

import (
	"context"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/citysports/league-registry/internal/infrastructure/billing/stripeapi"
	"github.com/citysports/league-registry/internal/infrastructure/repository/memory"
)

type Provider struct {
	mu            sync.RWMutex
	products      map[string]stripeapi.Product
	order         []string
	subscriptions map[string]stripeapi.Subscription
}

func NewProvider(products []stripeapi.Product, subscriptions []stripeapi.Subscription) *Provider {
	p := &Provider{
		products:      make(map[string]stripeapi.Product, len(products)),
		order:         make([]string, 0, len(products)),
		subscriptions: make(map[string]stripeapi.Subscription, len(subscriptions)),
	}
	for _, product := range products {
		p.products[product.ID] = product
		p.order = append(p.order, product.ID)
	}
	for _, sub := range subscriptions {
		p.subscriptions[sub.UserID] = sub
	}

	return p
}

func (p *Provider) ListProducts(_ context.Context) ([]stripeapi.Product, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]stripeapi.Product, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.products[id])
	}

	return out, nil
}

func (p *Provider) GetProductByLeague(_ context.Context, leagueID string) (stripeapi.Product, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, id := range p.order {
		product := p.products[id]
		if product.LeagueID == leagueID {
			return product, true, nil
		}
	}

	return stripeapi.Product{}, false, nil
}

func (p *Provider) LinkProductToLeague(_ context.Context, productID, leagueID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	product, ok := p.products[productID]
	if !ok {
		return crerr.Newf("product %s not found", productID)
	}
	product.LeagueID = leagueID
	p.products[productID] = product

	return nil
}

func (p *Provider) UnlinkProduct(_ context.Context, productID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	product, ok := p.products[productID]
	if !ok {
		return crerr.Newf("product %s not found", productID)
	}
	product.LeagueID = ""
	p.products[productID] = product

	return nil
}

func (p *Provider) GetSubscriptionByUser(_ context.Context, userID string) (stripeapi.Subscription, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	sub, ok := p.subscriptions[userID]

	return sub, ok, nil
}

// SeedProducts mirrors the league seed so the editor has products to link.
func SeedProducts() []stripeapi.Product {
	return []stripeapi.Product{
		{ID: "prod-monday-volleyball", Name: "Monday Night Volleyball Fee", Price: 520, Currency: "cad", LeagueID: memory.LeagueIDVolleyballMonday, Active: true},
		{ID: "prod-badminton-mixed", Name: "Mixed Badminton Doubles Fee", Price: 180, Currency: "cad", LeagueID: memory.LeagueIDBadmintonMixed, Active: true},
		{ID: "prod-open-gym", Name: "Open Gym Pass", Price: 60, Currency: "cad", Active: true},
	}
}

func SeedSubscriptions() []stripeapi.Subscription {
	return []stripeapi.Subscription{
		{
			ID:               "sub-captain-annual",
			UserID:           memory.UserIDCaptain,
			Status:           "active",
			PlanName:         "Annual Membership",
			CurrentPeriodEnd: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		},
	}
}
