package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/citysports/league-registry/internal/domain/payment"
	qb "github.com/citysports/league-registry/internal/platform/querybuilder"
)

type PaymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) GetByID(ctx context.Context, paymentID string) (payment.Payment, bool, error) {
	query, args, err := qb.Select("*").From("league_payments").
		Where(
			qb.Eq("public_id", paymentID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return payment.Payment{}, false, fmt.Errorf("build get payment by id query: %w", err)
	}

	var row paymentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return payment.Payment{}, false, nil
		}
		return payment.Payment{}, false, fmt.Errorf("get payment by id: %w", err)
	}

	return paymentFromRow(row), true, nil
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID string) ([]payment.Payment, error) {
	query, args, err := qb.Select("*").From("league_payments").
		Where(
			qb.Eq("user_public_id", userID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("due_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list payments by user query: %w", err)
	}

	var rows []paymentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list payments by user: %w", err)
	}

	out := make([]payment.Payment, 0, len(rows))
	for _, row := range rows {
		out = append(out, paymentFromRow(row))
	}

	return out, nil
}

func (r *PaymentRepository) Delete(ctx context.Context, paymentID string) error {
	query, args, err := qb.DeleteFrom("league_payments").
		Where(qb.Eq("public_id", paymentID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete payment query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}

	return nil
}

func (r *PaymentRepository) SummaryByUser(ctx context.Context, userID string) (payment.Summary, error) {
	query, args, err := qb.Select(
		"COALESCE(SUM(amount_due), 0) AS total_due",
		"COALESCE(SUM(amount_paid), 0) AS total_paid",
		"COALESCE(SUM(GREATEST(amount_due - amount_paid, 0)), 0) AS total_outstanding",
		"COUNT(1) FILTER (WHERE status IN ('pending', 'partial')) AS pending_count",
		"COUNT(1) FILTER (WHERE status = 'overdue') AS overdue_count",
	).From("league_payments").
		Where(
			qb.Eq("user_public_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return payment.Summary{}, fmt.Errorf("build payment summary query: %w", err)
	}

	var row paymentSummaryRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return payment.Summary{}, fmt.Errorf("payment summary by user: %w", err)
	}

	return payment.Summary{
		TotalDue:         row.TotalDue,
		TotalPaid:        row.TotalPaid,
		TotalOutstanding: row.TotalOutstanding,
		PendingCount:     row.PendingCount,
		OverdueCount:     row.OverdueCount,
	}, nil
}
