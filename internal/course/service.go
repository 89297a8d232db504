// AngelaMos | 2026
// service.go

package course

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/promptacademy/platform-api/internal/auth"
	"github.com/promptacademy/platform-api/internal/core"
	"github.com/promptacademy/platform-api/internal/tier"
)

var ErrTitleExists = errors.New("course title already exists")

// ViewerProvider resolves the requesting user so listings can be
// annotated with access state. Satisfied by user.Service.
type ViewerProvider interface {
	GetByID(ctx context.Context, id string) (*auth.UserInfo, error)
}

type Service struct {
	repo    Repository
	viewers ViewerProvider
	policy  *tier.Policy
}

func NewService(
	repo Repository,
	viewers ViewerProvider,
	policy *tier.Policy,
) *Service {
	return &Service{
		repo:    repo,
		viewers: viewers,
		policy:  policy,
	}
}

// Create derives the access tier from the price through the same
// breakpoint table used for user tiers; the stored tier is never
// client-supplied.
func (s *Service) Create(
	ctx context.Context,
	req CreateCourseRequest,
) (*CourseResponse, error) {
	exists, err := s.repo.ExistsByTitle(ctx, req.Title)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrTitleExists
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	course := &Course{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		AccessTier:  s.policy.ForPrice(req.Price).String(),
		Active:      active,
		Modules:     req.Modules,
	}

	if err := s.repo.Create(ctx, course); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrTitleExists
		}
		return nil, err
	}

	resp := s.annotate(course, nil)
	return &resp, nil
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateCourseRequest,
) (*CourseResponse, error) {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && !strings.EqualFold(*req.Title, course.Title) {
		exists, err := s.repo.ExistsByTitle(ctx, *req.Title)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrTitleExists
		}
		course.Title = strings.TrimSpace(*req.Title)
	}

	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.ImageURL != nil {
		course.ImageURL = *req.ImageURL
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.Active != nil {
		course.Active = *req.Active
	}
	if req.Modules != nil {
		course.Modules = req.Modules
	}

	// Recompute on every write so a price change can never leave a
	// stale tier behind.
	course.AccessTier = s.policy.ForPrice(course.Price).String()

	if err := s.repo.Update(ctx, course); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrTitleExists
		}
		return nil, err
	}

	resp := s.annotate(course, nil)
	return &resp, nil
}

func (s *Service) GetByID(
	ctx context.Context,
	id, viewerID string,
) (*CourseResponse, error) {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	viewer := s.resolveViewer(ctx, viewerID)
	resp := s.annotate(course, viewer)
	return &resp, nil
}

func (s *Service) List(
	ctx context.Context,
	params ListCoursesParams,
	viewerID string,
) ([]CourseResponse, int, error) {
	courses, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	viewer := s.resolveViewer(ctx, viewerID)

	resp := make([]CourseResponse, 0, len(courses))
	for i := range courses {
		resp = append(resp, s.annotate(&courses[i], viewer))
	}

	return resp, total, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}

func (s *Service) resolveViewer(
	ctx context.Context,
	viewerID string,
) *auth.UserInfo {
	if viewerID == "" {
		return nil
	}

	viewer, err := s.viewers.GetByID(ctx, viewerID)
	if err != nil {
		// Annotate as anonymous rather than failing the listing.
		return nil
	}

	return viewer
}

func (s *Service) annotate(
	course *Course,
	viewer *auth.UserInfo,
) CourseResponse {
	courseTier := tier.Parse(course.AccessTier)

	viewerTier := tier.Basic
	var totalPaid int64
	if viewer != nil {
		viewerTier = tier.Parse(viewer.Tier)
		totalPaid = viewer.TotalPaid
	}

	canAccess := tier.CanAccess(viewerTier, courseTier)

	var required int64
	if !canAccess {
		required = s.policy.RequiredPayment(totalPaid, course.Price)
	}

	return CourseResponse{
		ID:              course.ID,
		Title:           course.Title,
		Description:     course.Description,
		ImageURL:        course.ImageURL,
		Price:           course.Price,
		AccessTier:      course.AccessTier,
		Active:          course.Active,
		Modules:         course.Modules,
		CanAccess:       canAccess,
		RequiredPayment: required,
		CreatedAt:       course.CreatedAt,
		UpdatedAt:       course.UpdatedAt,
	}
}
