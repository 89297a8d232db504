// AngelaMos | 2026
// repository_test.go

package user

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptacademy/platform-api/internal/core"
	"github.com/promptacademy/platform-api/internal/tier"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() }) //nolint:errcheck // test cleanup

	return sqlx.NewDb(db, "sqlmock"), mock
}

func userRows(totalPaid int64, tierName string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "email", "username", "password_hash", "role", "total_paid",
		"subscription_tier", "created_at", "updated_at",
	}).AddRow(
		"u-1", "a@b.com", "alice", "hash", "user", totalPaid,
		tierName, now, now,
	)
}

func TestApplyPaymentCrossesBreakpoint(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	policy, err := tier.NewPolicy(tier.DefaultBreakpoints)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM users\s+WHERE id = \$1\s+FOR UPDATE`).
		WithArgs("u-1").
		WillReturnRows(userRows(150, "basic"))

	mock.ExpectQuery(`UPDATE users\s+SET total_paid = \$2, subscription_tier = \$3`).
		WithArgs("u-1", int64(250), "intermediate").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).
			AddRow(time.Now()))

	updated, err := repo.ApplyPayment(context.Background(), "u-1", 100, policy)
	require.NoError(t, err)

	assert.Equal(t, int64(250), updated.TotalPaid)
	assert.Equal(t, "intermediate", updated.SubscriptionTier)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPaymentReachesPremium(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	policy, err := tier.NewPolicy(tier.DefaultBreakpoints)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FOR UPDATE`).
		WithArgs("u-1").
		WillReturnRows(userRows(800, "intermediate"))

	mock.ExpectQuery(`UPDATE users`).
		WithArgs("u-1", int64(1300), "premium").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).
			AddRow(time.Now()))

	updated, err := repo.ApplyPayment(context.Background(), "u-1", 500, policy)
	require.NoError(t, err)

	assert.Equal(t, "premium", updated.SubscriptionTier)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPaymentUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	policy, err := tier.NewPolicy(tier.DefaultBreakpoints)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FOR UPDATE`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.ApplyPayment(context.Background(), "missing", 100, policy)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCreateReturnsDuplicateOnUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &User{
		ID:               "u-2",
		Email:            "a@b.com",
		Username:         "alice2",
		PasswordHash:     "hash",
		Role:             "user",
		SubscriptionTier: "basic",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}
