package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/citysports/league-registry/internal/domain/payment"
)

type PaymentRepository struct {
	mu    sync.RWMutex
	items map[string]payment.Payment
}

func NewPaymentRepository(payments []payment.Payment) *PaymentRepository {
	items := make(map[string]payment.Payment, len(payments))
	for _, p := range payments {
		items[p.ID] = p
	}

	return &PaymentRepository{items: items}
}

func (r *PaymentRepository) GetByID(_ context.Context, paymentID string) (payment.Payment, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[paymentID]
	if !ok {
		return payment.Payment{}, false, nil
	}

	return p, true, nil
}

func (r *PaymentRepository) ListByUser(_ context.Context, userID string) ([]payment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]payment.Payment, 0)
	for _, p := range r.items {
		if p.UserID == userID {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *PaymentRepository) Delete(_ context.Context, paymentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, paymentID)

	return nil
}

// DeleteByTeam mirrors the database's cascading delete from teams to
// payments. The team repository calls it; services never do.
func (r *PaymentRepository) DeleteByTeam(_ context.Context, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.items {
		if p.TeamID == teamID {
			delete(r.items, id)
		}
	}

	return nil
}

func (r *PaymentRepository) SummaryByUser(_ context.Context, userID string) (payment.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var summary payment.Summary
	for _, p := range r.items {
		if p.UserID != userID {
			continue
		}
		summary.TotalDue += p.AmountDue
		summary.TotalPaid += p.AmountPaid
		summary.TotalOutstanding += p.Outstanding()
		switch p.Status {
		case payment.StatusPending, payment.StatusPartial:
			summary.PendingCount++
		case payment.StatusOverdue:
			summary.OverdueCount++
		}
	}

	return summary, nil
}
