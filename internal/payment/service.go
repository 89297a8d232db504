// AngelaMos | 2026
// service.go

package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/promptacademy/platform-api/internal/config"
	"github.com/promptacademy/platform-api/internal/core"
	"github.com/promptacademy/platform-api/internal/tier"
	"github.com/promptacademy/platform-api/internal/user"
)

var ErrInvalidSignature = errors.New("payment signature mismatch")

type Service struct {
	db       *sqlx.DB
	repo     Repository
	gateway  *Gateway
	policy   *tier.Policy
	currency string
	logger   *slog.Logger
}

func NewService(
	db *sqlx.DB,
	repo Repository,
	gateway *Gateway,
	policy *tier.Policy,
	billing config.BillingConfig,
	logger *slog.Logger,
) *Service {
	return &Service{
		db:       db,
		repo:     repo,
		gateway:  gateway,
		policy:   policy,
		currency: billing.Currency,
		logger:   logger,
	}
}

func (s *Service) CreateOrder(
	ctx context.Context,
	userID string,
	req CreateOrderRequest,
) (*OrderResponse, error) {
	receipt := uuid.New().String()

	order, err := s.gateway.CreateOrder(ctx, req.Amount, s.currency, receipt)
	if err != nil {
		return nil, fmt.Errorf("gateway order: %w", err)
	}

	record := &Payment{
		ID:       uuid.New().String(),
		UserID:   userID,
		OrderID:  order.ID,
		Amount:   req.Amount,
		Currency: s.currency,
		Status:   StatusCreated,
		Plan:     req.Plan,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("payment order created",
		"user_id", userID,
		"order_id", order.ID,
		"amount", req.Amount,
	)

	return &OrderResponse{
		OrderID:  order.ID,
		Amount:   req.Amount,
		Currency: s.currency,
		KeyID:    s.gateway.KeyID(),
	}, nil
}

// VerifyPayment validates the gateway signature, then claims the
// order and credits the user inside one transaction. The row locks
// taken by MarkPaid and ApplyPayment make the whole read-credit-write
// sequence atomic; two concurrent verifications of the same order
// leave exactly one credit behind.
func (s *Service) VerifyPayment(
	ctx context.Context,
	userID string,
	req VerifyPaymentRequest,
) (*VerifyResponse, error) {
	if !s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		s.logger.Warn("payment signature rejected",
			"user_id", userID,
			"order_id", req.OrderID,
		)
		return nil, ErrInvalidSignature
	}

	var resp *VerifyResponse

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		record, err := NewRepository(tx).MarkPaid(
			ctx,
			req.OrderID,
			req.PaymentID,
		)
		if err != nil {
			return err
		}

		if record.UserID != userID {
			return fmt.Errorf("verify payment: %w", core.ErrForbidden)
		}

		updated, err := user.NewRepository(tx).ApplyPayment(
			ctx,
			userID,
			record.Amount,
			s.policy,
		)
		if err != nil {
			return err
		}

		resp = &VerifyResponse{
			Verified:         true,
			Amount:           record.Amount,
			TotalPaid:        updated.TotalPaid,
			SubscriptionTier: updated.SubscriptionTier,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment verified",
		"user_id", userID,
		"order_id", req.OrderID,
		"total_paid", resp.TotalPaid,
		"tier", resp.SubscriptionTier,
	)

	return resp, nil
}

func (s *Service) History(
	ctx context.Context,
	userID string,
) ([]PaymentResponse, error) {
	payments, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, PaymentResponse{
			ID:        p.ID,
			OrderID:   p.OrderID,
			PaymentID: p.PaymentID,
			Amount:    p.Amount,
			Currency:  p.Currency,
			Status:    p.Status,
			Plan:      p.Plan,
			PaidAt:    p.PaidAt,
			CreatedAt: p.CreatedAt,
		})
	}

	return resp, nil
}
