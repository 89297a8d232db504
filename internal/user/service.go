// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/promptacademy/platform-api/internal/auth"
	"github.com/promptacademy/platform-api/internal/core"
	"github.com/promptacademy/platform-api/internal/tier"
)

type Service struct {
	repo   Repository
	policy *tier.Policy
}

func NewService(repo Repository, policy *tier.Policy) *Service {
	return &Service{
		repo:   repo,
		policy: policy,
	}
}

// Create provisions a new account at the basic tier with a zeroed
// payment total. Satisfies auth.UserProvider.
func (s *Service) Create(
	ctx context.Context,
	email, username, passwordHash string,
) (*auth.UserInfo, error) {
	email = strings.ToLower(email)

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		// The unique index still backstops concurrent registrations.
		return nil, core.ErrDuplicateKey
	}

	user := &User{
		ID:               uuid.New().String(),
		Email:            email,
		Username:         username,
		PasswordHash:     passwordHash,
		Role:             "user",
		TotalPaid:        0,
		SubscriptionTier: tier.Basic.String(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

// GetProfile returns the user's account along with how far they are
// from the next subscription tier.
func (s *Service) GetProfile(
	ctx context.Context,
	userID string,
) (*ProfileResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := toProfileResponse(user)

	current := tier.Parse(user.SubscriptionTier)
	if current < tier.Premium {
		next := current + 1
		resp.NextTier = next.String()
		resp.NextTierPayment = s.policy.BreakpointFor(next) - user.TotalPaid
		if resp.NextTierPayment < 0 {
			resp.NextTierPayment = 0
		}
	}

	return &resp, nil
}

func (s *Service) List(
	ctx context.Context,
	params ListUsersParams,
) ([]ProfileResponse, int, error) {
	users, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]ProfileResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toProfileResponse(&users[i]))
	}

	return resp, total, nil
}

func (s *Service) UpdateRole(ctx context.Context, userID, role string) error {
	if err := s.repo.UpdateRole(ctx, userID, role); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Tier:         u.SubscriptionTier,
		TotalPaid:    u.TotalPaid,
		CreatedAt:    u.CreatedAt,
	}
}
