// AngelaMos | 2026
// service_test.go

package payment

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptacademy/platform-api/internal/config"
	"github.com/promptacademy/platform-api/internal/core"
	"github.com/promptacademy/platform-api/internal/tier"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func newTestService(t *testing.T, db *sqlx.DB) *Service {
	t.Helper()

	gw, err := NewGateway(config.PaymentConfig{
		KeyID:     "rzp_test_key",
		KeySecret: "rzp_test_secret",
		BaseURL:   "http://unused",
		Timeout:   time.Second,
	})
	require.NoError(t, err)

	policy, err := tier.NewPolicy(tier.DefaultBreakpoints)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewService(db, NewRepository(db), gw, policy,
		config.BillingConfig{Currency: "INR"}, logger)
}

func paidPaymentRows(userID string, amount int64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "user_id", "order_id", "payment_id", "amount", "currency",
		"status", "plan", "paid_at", "created_at",
	}).AddRow(
		"pay-1", userID, "order_1", "gw_pay_1", amount, "INR",
		StatusPaid, "intermediate", now, now,
	)
}

func lockedUserRows(userID string, totalPaid int64, tierName string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "email", "username", "password_hash", "role", "total_paid",
		"subscription_tier", "created_at", "updated_at",
	}).AddRow(
		userID, "a@b.com", "alice", "hash", "user", totalPaid,
		tierName, now, now,
	)
}

func TestVerifyPaymentCreditsUserInOneTx(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newTestService(t, db)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE payments`).
		WithArgs("order_1", "gw_pay_1", StatusPaid, StatusCreated).
		WillReturnRows(paidPaymentRows("u-1", 100))
	mock.ExpectQuery(`SELECT (.+) FOR UPDATE`).
		WithArgs("u-1").
		WillReturnRows(lockedUserRows("u-1", 150, "basic"))
	mock.ExpectQuery(`UPDATE users`).
		WithArgs("u-1", int64(250), "intermediate").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).
			AddRow(time.Now()))
	mock.ExpectCommit()

	resp, err := svc.VerifyPayment(context.Background(), "u-1",
		VerifyPaymentRequest{
			OrderID:   "order_1",
			PaymentID: "gw_pay_1",
			Signature: sign("rzp_test_secret", "order_1", "gw_pay_1"),
		})
	require.NoError(t, err)

	assert.True(t, resp.Verified)
	assert.Equal(t, int64(100), resp.Amount)
	assert.Equal(t, int64(250), resp.TotalPaid)
	assert.Equal(t, "intermediate", resp.SubscriptionTier)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyPaymentRejectsBadSignature(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newTestService(t, db)

	_, err := svc.VerifyPayment(context.Background(), "u-1",
		VerifyPaymentRequest{
			OrderID:   "order_1",
			PaymentID: "gw_pay_1",
			Signature: "deadbeef",
		})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	// Nothing may touch the database on a rejected signature.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyPaymentReplayIsConflict(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newTestService(t, db)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE payments`).
		WithArgs("order_1", "gw_pay_1", StatusPaid, StatusCreated).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT (.+) FROM payments`).
		WithArgs("order_1").
		WillReturnRows(paidPaymentRows("u-1", 100))
	mock.ExpectRollback()

	_, err := svc.VerifyPayment(context.Background(), "u-1",
		VerifyPaymentRequest{
			OrderID:   "order_1",
			PaymentID: "gw_pay_1",
			Signature: sign("rzp_test_secret", "order_1", "gw_pay_1"),
		})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyPaymentUnknownOrder(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newTestService(t, db)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE payments`).
		WithArgs("order_x", "gw_pay_1", StatusPaid, StatusCreated).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT (.+) FROM payments`).
		WithArgs("order_x").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.VerifyPayment(context.Background(), "u-1",
		VerifyPaymentRequest{
			OrderID:   "order_x",
			PaymentID: "gw_pay_1",
			Signature: sign("rzp_test_secret", "order_x", "gw_pay_1"),
		})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyPaymentWrongOwner(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newTestService(t, db)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE payments`).
		WithArgs("order_1", "gw_pay_1", StatusPaid, StatusCreated).
		WillReturnRows(paidPaymentRows("owner", 100))
	mock.ExpectRollback()

	_, err := svc.VerifyPayment(context.Background(), "intruder",
		VerifyPaymentRequest{
			OrderID:   "order_1",
			PaymentID: "gw_pay_1",
			Signature: sign("rzp_test_secret", "order_1", "gw_pay_1"),
		})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}
