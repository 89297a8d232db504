// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptacademy/platform-api/internal/core"
	"github.com/promptacademy/platform-api/internal/tier"
)

type recordingRepo struct {
	Repository

	created     *User
	emailLookup string
}

func (r *recordingRepo) Create(_ context.Context, u *User) error {
	cp := *u
	r.created = &cp
	return nil
}

func (r *recordingRepo) GetByEmail(
	_ context.Context,
	email string,
) (*User, error) {
	r.emailLookup = email
	if r.created != nil && r.created.Email == email {
		cp := *r.created
		return &cp, nil
	}
	return nil, core.ErrNotFound
}

func (r *recordingRepo) ExistsByEmail(
	_ context.Context,
	email string,
) (bool, error) {
	return r.created != nil && r.created.Email == email, nil
}

func newServiceWithRepo(t *testing.T, repo Repository) *Service {
	t.Helper()

	policy, err := tier.NewPolicy(tier.DefaultBreakpoints)
	require.NoError(t, err)

	return NewService(repo, policy)
}

func TestCreateLowercasesEmail(t *testing.T) {
	repo := &recordingRepo{}
	svc := newServiceWithRepo(t, repo)

	info, err := svc.Create(context.Background(),
		"Alice@Example.COM", "alice", "hash")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", info.Email)
	require.NotNil(t, repo.created)
	assert.Equal(t, "alice@example.com", repo.created.Email)
}

func TestCreateRejectsDuplicateEmailCaseInsensitive(t *testing.T) {
	repo := &recordingRepo{}
	svc := newServiceWithRepo(t, repo)

	_, err := svc.Create(context.Background(),
		"alice@example.com", "alice", "hash")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(),
		"ALICE@Example.com", "alice2", "hash2")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestGetByEmailLowercasesLookup(t *testing.T) {
	repo := &recordingRepo{}
	svc := newServiceWithRepo(t, repo)

	_, err := svc.Create(context.Background(),
		"Alice@Example.COM", "alice", "hash")
	require.NoError(t, err)

	info, err := svc.GetByEmail(context.Background(), "ALICE@example.com")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", repo.emailLookup)
	assert.Equal(t, "alice@example.com", info.Email)
}
