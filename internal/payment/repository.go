// AngelaMos | 2026
// repository.go

package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/promptacademy/platform-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, payment *Payment) error
	GetByOrderID(ctx context.Context, orderID string) (*Payment, error)
	MarkPaid(ctx context.Context, orderID, paymentID string) (*Payment, error)
	ListByUser(ctx context.Context, userID string) ([]Payment, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, payment *Payment) error {
	query := `
		INSERT INTO payments (id, user_id, order_id, amount, currency,
		                      status, plan)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &payment.CreatedAt, query,
		payment.ID,
		payment.UserID,
		payment.OrderID,
		payment.Amount,
		payment.Currency,
		payment.Status,
		payment.Plan,
	)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}

	return nil
}

func (r *repository) GetByOrderID(
	ctx context.Context,
	orderID string,
) (*Payment, error) {
	query := `
		SELECT id, user_id, order_id, payment_id, amount, currency,
		       status, plan, paid_at, created_at
		FROM payments
		WHERE order_id = $1`

	var payment Payment
	err := r.db.GetContext(ctx, &payment, query, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get payment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}

	return &payment, nil
}

// MarkPaid claims the order row atomically: only one caller can move
// it from created to paid, so a replayed verification can never
// credit the amount twice.
func (r *repository) MarkPaid(
	ctx context.Context,
	orderID, paymentID string,
) (*Payment, error) {
	query := `
		UPDATE payments
		SET status = $3, payment_id = $2, paid_at = NOW()
		WHERE order_id = $1 AND status = $4
		RETURNING id, user_id, order_id, payment_id, amount, currency,
		          status, plan, paid_at, created_at`

	var payment Payment
	err := r.db.GetContext(ctx, &payment, query,
		orderID,
		paymentID,
		StatusPaid,
		StatusCreated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		// Either the order never existed or it was already claimed.
		if _, getErr := r.GetByOrderID(ctx, orderID); getErr == nil {
			return nil, fmt.Errorf("mark paid: %w", core.ErrConflict)
		}
		return nil, fmt.Errorf("mark paid: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("mark paid: %w", err)
	}

	return &payment, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Payment, error) {
	query := `
		SELECT id, user_id, order_id, payment_id, amount, currency,
		       status, plan, paid_at, created_at
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC`

	var payments []Payment
	if err := r.db.SelectContext(ctx, &payments, query, userID); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	return payments, nil
}
