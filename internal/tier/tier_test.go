// AngelaMos | 2026
// tier_test.go

package tier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPolicy(t *testing.T) *Policy {
	t.Helper()
	p, err := NewPolicy(DefaultBreakpoints)
	require.NoError(t, err)
	return p
}

func TestNewPolicy_RejectsBadBreakpoints(t *testing.T) {
	_, err := NewPolicy(Breakpoints{Intermediate: 0, Premium: 1000})
	assert.Error(t, err)

	_, err = NewPolicy(Breakpoints{Intermediate: 500, Premium: 500})
	assert.Error(t, err)

	_, err = NewPolicy(Breakpoints{Intermediate: 1000, Premium: 200})
	assert.Error(t, err)
}

func TestDerive_Examples(t *testing.T) {
	p := newTestPolicy(t)

	tests := []struct {
		amount int64
		want   Tier
	}{
		{0, Basic},
		{199, Basic},
		{200, Intermediate},
		{999, Intermediate},
		{1000, Premium},
		{5000, Premium},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Derive(tt.amount), "amount %d", tt.amount)
	}
}

func TestDerive_NegativeClampsToLowest(t *testing.T) {
	p := newTestPolicy(t)
	assert.Equal(t, Basic, p.Derive(-1))
	assert.Equal(t, Basic, p.Derive(-100000))
}

func TestDerive_Monotonic(t *testing.T) {
	p := newTestPolicy(t)

	prev := p.Derive(0)
	for amount := int64(1); amount <= 2000; amount++ {
		cur := p.Derive(amount)
		require.GreaterOrEqual(t, cur, prev, "amount %d", amount)
		prev = cur
	}
}

func TestForPrice_SharesBreakpointTable(t *testing.T) {
	p := newTestPolicy(t)

	for amount := int64(0); amount <= 2000; amount += 50 {
		assert.Equal(t, p.Derive(amount), p.ForPrice(amount))
	}
}

func TestCanAccess(t *testing.T) {
	assert.True(t, CanAccess(Basic, Basic))
	assert.True(t, CanAccess(Premium, Basic))
	assert.True(t, CanAccess(Premium, Premium))
	assert.False(t, CanAccess(Basic, Intermediate))
	assert.False(t, CanAccess(Intermediate, Premium))
}

func TestCanAccess_ConsistentWithBreakpoints(t *testing.T) {
	p := newTestPolicy(t)

	// canAccess(derive(a), forPrice(price)) holds exactly when the paid
	// amount reaches the breakpoint for the course's required tier.
	for _, paid := range []int64{0, 100, 199, 200, 500, 999, 1000, 1500} {
		for _, price := range []int64{0, 50, 200, 700, 1000, 3000} {
			got := CanAccess(p.Derive(paid), p.ForPrice(price))
			want := paid >= p.BreakpointFor(p.ForPrice(price))
			assert.Equal(t, want, got, "paid=%d price=%d", paid, price)
		}
	}
}

func TestRequiredPayment(t *testing.T) {
	p := newTestPolicy(t)

	assert.Equal(t, int64(0), p.RequiredPayment(0, 0))
	assert.Equal(t, int64(200), p.RequiredPayment(0, 200))
	assert.Equal(t, int64(800), p.RequiredPayment(200, 1000))
	assert.Equal(t, int64(0), p.RequiredPayment(200, 200))
	assert.Equal(t, int64(0), p.RequiredPayment(1500, 1000))
	assert.Equal(t, int64(200), p.RequiredPayment(-50, 200))
}

func TestRequiredPayment_NeverNegative(t *testing.T) {
	p := newTestPolicy(t)

	for _, paid := range []int64{0, 200, 1000, 9999} {
		for _, price := range []int64{0, 200, 1000} {
			assert.GreaterOrEqual(t, p.RequiredPayment(paid, price), int64(0))
		}
	}
}

func TestUserAccessScenario(t *testing.T) {
	p := newTestPolicy(t)

	// A user who paid 200 sits at intermediate: free and 200-priced
	// courses open, 1000-priced courses still gated.
	userTier := p.Derive(200)
	assert.True(t, CanAccess(userTier, p.ForPrice(0)))
	assert.True(t, CanAccess(userTier, p.ForPrice(200)))
	assert.False(t, CanAccess(userTier, p.ForPrice(1000)))
	assert.Equal(t, int64(800), p.RequiredPayment(200, 1000))
}

func TestParseRoundTrip(t *testing.T) {
	for _, tr := range []Tier{Basic, Intermediate, Premium} {
		assert.Equal(t, tr, Parse(tr.String()))
	}
	assert.Equal(t, Basic, Parse("unknown"))
	assert.Equal(t, Basic, Parse(""))
}
