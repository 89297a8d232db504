// AngelaMos | 2026
// dto.go

package payment

import "time"

type CreateOrderRequest struct {
	Amount int64  `json:"amount" validate:"required,gt=0"`
	Plan   string `json:"plan"   validate:"max=100"`
}

type OrderResponse struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"   validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature"  validate:"required"`
}

type VerifyResponse struct {
	Verified         bool   `json:"verified"`
	Amount           int64  `json:"amount"`
	TotalPaid        int64  `json:"total_paid"`
	SubscriptionTier string `json:"subscription_tier"`
}

type PaymentResponse struct {
	ID        string     `json:"id"`
	OrderID   string     `json:"order_id"`
	PaymentID *string    `json:"payment_id,omitempty"`
	Amount    int64      `json:"amount"`
	Currency  string     `json:"currency"`
	Status    string     `json:"status"`
	Plan      string     `json:"plan,omitempty"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
