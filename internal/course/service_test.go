// AngelaMos | 2026
// service_test.go

package course

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptacademy/platform-api/internal/auth"
	"github.com/promptacademy/platform-api/internal/core"
	"github.com/promptacademy/platform-api/internal/tier"
)

type memoryRepo struct {
	courses map[string]*Course
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{courses: map[string]*Course{}}
}

func (m *memoryRepo) Create(_ context.Context, c *Course) error {
	for _, existing := range m.courses {
		if strings.EqualFold(existing.Title, c.Title) {
			return core.ErrDuplicateKey
		}
	}
	cp := *c
	m.courses[c.ID] = &cp
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (*Course, error) {
	if c, ok := m.courses[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, core.ErrNotFound
}

func (m *memoryRepo) List(
	_ context.Context,
	params ListCoursesParams,
) ([]Course, int, error) {
	var out []Course
	for _, c := range m.courses {
		if !c.Active && !params.IncludeInactive {
			continue
		}
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (m *memoryRepo) Update(_ context.Context, c *Course) error {
	if _, ok := m.courses[c.ID]; !ok {
		return core.ErrNotFound
	}
	cp := *c
	m.courses[c.ID] = &cp
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.courses[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.courses, id)
	return nil
}

func (m *memoryRepo) ExistsByTitle(
	_ context.Context,
	title string,
) (bool, error) {
	for _, c := range m.courses {
		if strings.EqualFold(c.Title, title) {
			return true, nil
		}
	}
	return false, nil
}

type stubViewers struct {
	users map[string]*auth.UserInfo
}

func (s *stubViewers) GetByID(
	_ context.Context,
	id string,
) (*auth.UserInfo, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, core.ErrNotFound
}

func newTestService(t *testing.T, viewers *stubViewers) *Service {
	t.Helper()

	policy, err := tier.NewPolicy(tier.DefaultBreakpoints)
	require.NoError(t, err)

	if viewers == nil {
		viewers = &stubViewers{users: map[string]*auth.UserInfo{}}
	}

	return NewService(newMemoryRepo(), viewers, policy)
}

func TestCreateDerivesAccessTierFromPrice(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	cases := []struct {
		price int64
		want  string
	}{
		{0, "basic"},
		{199, "basic"},
		{200, "intermediate"},
		{999, "intermediate"},
		{1000, "premium"},
		{2500, "premium"},
	}

	for _, tc := range cases {
		created, err := svc.Create(ctx, CreateCourseRequest{
			Title: fmt.Sprintf("Course priced at %d", tc.price),
			Price: tc.price,
		})
		require.NoError(t, err)
		assert.Equal(t, tc.want, created.AccessTier,
			"price %d", tc.price)
	}
}

func TestUpdatePriceRecomputesTier(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCourseRequest{
		Title: "Prompt Engineering Fundamentals",
		Price: 100,
	})
	require.NoError(t, err)
	require.Equal(t, "basic", created.AccessTier)

	newPrice := int64(1500)
	updated, err := svc.Update(ctx, created.ID, UpdateCourseRequest{
		Price: &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, "premium", updated.AccessTier)
}

func TestCreateDuplicateTitleCaseInsensitive(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateCourseRequest{
		Title: "Advanced Prompting",
		Price: 500,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateCourseRequest{
		Title: "ADVANCED PROMPTING",
		Price: 700,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTitleExists)
}

func TestAnnotationsForViewer(t *testing.T) {
	viewers := &stubViewers{users: map[string]*auth.UserInfo{
		"u-basic": {
			ID:        "u-basic",
			Tier:      "basic",
			TotalPaid: 50,
		},
		"u-premium": {
			ID:        "u-premium",
			Tier:      "premium",
			TotalPaid: 1200,
		},
	}}
	svc := newTestService(t, viewers)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCourseRequest{
		Title: "Premium Masterclass",
		Price: 1500,
	})
	require.NoError(t, err)
	require.Equal(t, "premium", created.AccessTier)

	forBasic, err := svc.GetByID(ctx, created.ID, "u-basic")
	require.NoError(t, err)
	assert.False(t, forBasic.CanAccess)
	assert.Equal(t, int64(950), forBasic.RequiredPayment,
		"premium breakpoint 1000 minus 50 already paid")

	forPremium, err := svc.GetByID(ctx, created.ID, "u-premium")
	require.NoError(t, err)
	assert.True(t, forPremium.CanAccess)
	assert.Equal(t, int64(0), forPremium.RequiredPayment)
}

func TestAnnotationsForAnonymous(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	free, err := svc.Create(ctx, CreateCourseRequest{
		Title: "Getting Started",
		Price: 0,
	})
	require.NoError(t, err)

	paid, err := svc.Create(ctx, CreateCourseRequest{
		Title: "Deep Dive",
		Price: 500,
	})
	require.NoError(t, err)

	freeView, err := svc.GetByID(ctx, free.ID, "")
	require.NoError(t, err)
	assert.True(t, freeView.CanAccess)

	paidView, err := svc.GetByID(ctx, paid.ID, "")
	require.NoError(t, err)
	assert.False(t, paidView.CanAccess)
	assert.Equal(t, int64(200), paidView.RequiredPayment)
}

func TestUnknownViewerTreatedAsAnonymous(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCourseRequest{
		Title: "Deep Dive",
		Price: 500,
	})
	require.NoError(t, err)

	view, err := svc.GetByID(ctx, created.ID, "ghost-user")
	require.NoError(t, err)
	assert.False(t, view.CanAccess)
}
