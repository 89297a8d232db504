// AngelaMos | 2026
// entity.go

package payment

import "time"

// Payment is one row of the per-user ledger. Amount is stored in
// major currency units; the gateway converts to minor units on the
// wire. Status moves created -> paid exactly once.
type Payment struct {
	ID        string     `db:"id"`
	UserID    string     `db:"user_id"`
	OrderID   string     `db:"order_id"`
	PaymentID *string    `db:"payment_id"`
	Amount    int64      `db:"amount"`
	Currency  string     `db:"currency"`
	Status    string     `db:"status"`
	Plan      string     `db:"plan"`
	PaidAt    *time.Time `db:"paid_at"`
	CreatedAt time.Time  `db:"created_at"`
}

const (
	StatusCreated = "created"
	StatusPaid    = "paid"
)
