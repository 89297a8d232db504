// AngelaMos | 2026
// tier.go

package tier

import (
	"fmt"
)

// Tier is an ordered subscription level. The zero value is the lowest
// tier, which every signed-in user holds for free.
type Tier int

const (
	Basic Tier = iota
	Intermediate
	Premium
)

const (
	basicName        = "basic"
	intermediateName = "intermediate"
	premiumName      = "premium"
)

func (t Tier) String() string {
	switch t {
	case Basic:
		return basicName
	case Intermediate:
		return intermediateName
	case Premium:
		return premiumName
	}
	return basicName
}

// Parse maps a stored tier name back to its ordinal. Unknown names
// degrade to Basic rather than failing: a row written by an older
// deployment must never lock a user out entirely.
func Parse(s string) Tier {
	switch s {
	case premiumName:
		return Premium
	case intermediateName:
		return Intermediate
	default:
		return Basic
	}
}

// Breakpoints is the single shared table mapping cumulative amounts to
// tiers. Both user-side derivation (from total paid) and course-side
// derivation (from price) consume this same table, so the two sides can
// never drift apart.
type Breakpoints struct {
	Intermediate int64
	Premium      int64
}

// DefaultBreakpoints matches the published plan prices.
var DefaultBreakpoints = Breakpoints{
	Intermediate: 200,
	Premium:      1000,
}

func (b Breakpoints) validate() error {
	if b.Intermediate <= 0 {
		return fmt.Errorf("intermediate breakpoint must be positive")
	}
	if b.Premium <= b.Intermediate {
		return fmt.Errorf("premium breakpoint must exceed intermediate")
	}
	return nil
}

// Policy answers access questions from the breakpoint table. All
// methods are pure; nothing here touches storage.
type Policy struct {
	breakpoints Breakpoints
}

func NewPolicy(b Breakpoints) (*Policy, error) {
	if err := b.validate(); err != nil {
		return nil, fmt.Errorf("tier policy: %w", err)
	}
	return &Policy{breakpoints: b}, nil
}

// Derive maps a cumulative paid amount to a tier. Total over all
// inputs; negative amounts clamp to zero (a caller contract violation,
// handled as the lowest tier rather than an error).
func (p *Policy) Derive(totalPaid int64) Tier {
	if totalPaid < 0 {
		totalPaid = 0
	}
	switch {
	case totalPaid >= p.breakpoints.Premium:
		return Premium
	case totalPaid >= p.breakpoints.Intermediate:
		return Intermediate
	default:
		return Basic
	}
}

// ForPrice derives the minimum tier required to access a course at the
// given price. Same table, same function as Derive.
func (p *Policy) ForPrice(price int64) Tier {
	return p.Derive(price)
}

// CanAccess reports whether a user tier grants access to a course tier.
func CanAccess(userTier, courseTier Tier) bool {
	return userTier >= courseTier
}

// BreakpointFor returns the amount at which the given tier begins.
func (p *Policy) BreakpointFor(t Tier) int64 {
	switch t {
	case Premium:
		return p.breakpoints.Premium
	case Intermediate:
		return p.breakpoints.Intermediate
	}
	return 0
}

// RequiredPayment quotes the additional amount a user must pay to reach
// the tier a course at the given price requires. Never negative.
func (p *Policy) RequiredPayment(totalPaid, coursePrice int64) int64 {
	required := p.BreakpointFor(p.ForPrice(coursePrice))
	if totalPaid < 0 {
		totalPaid = 0
	}
	if remaining := required - totalPaid; remaining > 0 {
		return remaining
	}
	return 0
}
