// AngelaMos | 2026
// dto.go

package user

import "time"

type ListUsersParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
	Role     string `json:"role"`
	Tier     string `json:"tier"`
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func (p *ListUsersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
}

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

type ProfileResponse struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Username         string    `json:"username"`
	Role             string    `json:"role"`
	TotalPaid        int64     `json:"total_paid"`
	SubscriptionTier string    `json:"subscription_tier"`
	NextTier         string    `json:"next_tier,omitempty"`
	NextTierPayment  int64     `json:"next_tier_payment,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func toProfileResponse(u *User) ProfileResponse {
	return ProfileResponse{
		ID:               u.ID,
		Email:            u.Email,
		Username:         u.Username,
		Role:             u.Role,
		TotalPaid:        u.TotalPaid,
		SubscriptionTier: u.SubscriptionTier,
		CreatedAt:        u.CreatedAt,
	}
}
