package usecase

import (
	"context"
	"errors"

	"github.com/citysports/league-registry/internal/infrastructure/billing/stripeapi"
)

// fakeBilling is an in-memory BillingProvider for service tests.
type fakeBilling struct {
	products      []stripeapi.Product
	subscriptions map[string]stripeapi.Subscription

	linkCalls   [][2]string
	unlinkCalls []string

	failLink bool
	err      error
}

var errBillingDown = errors.New("billing provider down")

func (f *fakeBilling) ListProducts(_ context.Context) ([]stripeapi.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeBilling) GetProductByLeague(_ context.Context, leagueID string) (stripeapi.Product, bool, error) {
	if f.err != nil {
		return stripeapi.Product{}, false, f.err
	}
	for _, p := range f.products {
		if p.LeagueID == leagueID {
			return p, true, nil
		}
	}
	return stripeapi.Product{}, false, nil
}

func (f *fakeBilling) LinkProductToLeague(_ context.Context, productID, leagueID string) error {
	if f.err != nil {
		return f.err
	}
	if f.failLink {
		return errBillingDown
	}
	f.linkCalls = append(f.linkCalls, [2]string{productID, leagueID})
	for i := range f.products {
		if f.products[i].ID == productID {
			f.products[i].LeagueID = leagueID
		}
	}
	return nil
}

func (f *fakeBilling) UnlinkProduct(_ context.Context, productID string) error {
	if f.err != nil {
		return f.err
	}
	f.unlinkCalls = append(f.unlinkCalls, productID)
	for i := range f.products {
		if f.products[i].ID == productID {
			f.products[i].LeagueID = ""
		}
	}
	return nil
}

func (f *fakeBilling) GetSubscriptionByUser(_ context.Context, userID string) (stripeapi.Subscription, bool, error) {
	if f.err != nil {
		return stripeapi.Subscription{}, false, f.err
	}
	sub, ok := f.subscriptions[userID]
	return sub, ok, nil
}
