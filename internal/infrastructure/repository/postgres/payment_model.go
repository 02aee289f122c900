package postgres

import (
	"database/sql"
	"time"

	"github.com/citysports/league-registry/internal/domain/payment"
)

type paymentTableModel struct {
	ID              int64          `db:"id"`
	PublicID        string         `db:"public_id"`
	UserID          string         `db:"user_public_id"`
	TeamID          sql.NullString `db:"team_public_id"`
	LeagueID        string         `db:"league_public_id"`
	AmountDue       float64        `db:"amount_due"`
	AmountPaid      float64        `db:"amount_paid"`
	Status          string         `db:"status"`
	DueDate         time.Time      `db:"due_date"`
	PaymentMethod   sql.NullString `db:"payment_method"`
	ProviderOrderID sql.NullString `db:"provider_order_id"`
	Notes           sql.NullString `db:"notes"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
	DeletedAt       *time.Time     `db:"deleted_at"`
}

func paymentFromRow(row paymentTableModel) payment.Payment {
	return payment.Payment{
		ID:              row.PublicID,
		UserID:          row.UserID,
		TeamID:          row.TeamID.String,
		LeagueID:        row.LeagueID,
		AmountDue:       row.AmountDue,
		AmountPaid:      row.AmountPaid,
		Status:          payment.Status(row.Status),
		DueDate:         row.DueDate,
		PaymentMethod:   row.PaymentMethod.String,
		ProviderOrderID: row.ProviderOrderID.String,
		Notes:           row.Notes.String,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

type paymentSummaryRow struct {
	TotalDue         float64 `db:"total_due"`
	TotalPaid        float64 `db:"total_paid"`
	TotalOutstanding float64 `db:"total_outstanding"`
	PendingCount     int     `db:"pending_count"`
	OverdueCount     int     `db:"overdue_count"`
}
