package payment

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPartial Status = "partial"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// Payment is one league registration fee owed by a user for a team.
// ProviderOrderID links back to the payment provider's order when the fee
// was settled online; it stays empty for offline payments.
type Payment struct {
	ID              string
	UserID          string
	TeamID          string
	LeagueID        string
	AmountDue       float64
	AmountPaid      float64
	Status          Status
	DueDate         time.Time
	PaymentMethod   string
	ProviderOrderID string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (p Payment) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("payment id is required")
	}
	if p.UserID == "" {
		return fmt.Errorf("payment user id is required")
	}
	if p.LeagueID == "" {
		return fmt.Errorf("payment league id is required")
	}
	if p.AmountDue < 0 {
		return fmt.Errorf("payment amount due cannot be negative")
	}

	return nil
}

// Outstanding never goes negative so overpayments read as settled.
func (p Payment) Outstanding() float64 {
	remaining := p.AmountDue - p.AmountPaid
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Virtual builds a placeholder payment for a team whose registration fee has
// no database record yet. The full league cost is owed and the ID marks the
// payment as not persisted.
func Virtual(userID, teamID, leagueID string, cost float64, now time.Time) Payment {
	return Payment{
		ID:         "virtual-" + teamID,
		UserID:     userID,
		TeamID:     teamID,
		LeagueID:   leagueID,
		AmountDue:  cost,
		AmountPaid: 0,
		Status:     StatusPending,
		DueDate:    now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsVirtual reports whether the payment is a placeholder that only exists in
// memory.
func (p Payment) IsVirtual() bool {
	return len(p.ID) > 8 && p.ID[:8] == "virtual-"
}

// Summary aggregates one user's registration fees across leagues.
type Summary struct {
	TotalDue         float64
	TotalPaid        float64
	TotalOutstanding float64
	PendingCount     int
	OverdueCount     int
}
