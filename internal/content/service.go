// AngelaMos | 2026
// service.go

package content

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/promptacademy/platform-api/internal/core"
)

var ErrTitleExists = errors.New("title already exists")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateLibrary(
	ctx context.Context,
	req CreateLibraryRequest,
) (*LibraryResponse, error) {
	exists, err := s.repo.LibraryExistsByTitle(ctx, req.Title)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrTitleExists
	}

	lib := &Library{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Level:       req.Level,
		Icon:        req.Icon,
	}

	if err := s.repo.CreateLibrary(ctx, lib); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrTitleExists
		}
		return nil, err
	}

	resp := toLibraryResponse(lib)
	return &resp, nil
}

func (s *Service) GetLibrary(
	ctx context.Context,
	id string,
) (*LibraryResponse, error) {
	lib, err := s.repo.GetLibrary(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toLibraryResponse(lib)
	return &resp, nil
}

func (s *Service) ListLibraries(
	ctx context.Context,
) ([]LibraryResponse, error) {
	libs, err := s.repo.ListLibraries(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]LibraryResponse, 0, len(libs))
	for i := range libs {
		resp = append(resp, toLibraryResponse(&libs[i]))
	}

	return resp, nil
}

func (s *Service) UpdateLibrary(
	ctx context.Context,
	id string,
	req UpdateLibraryRequest,
) (*LibraryResponse, error) {
	lib, err := s.repo.GetLibrary(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && !strings.EqualFold(*req.Title, lib.Title) {
		exists, err := s.repo.LibraryExistsByTitle(ctx, *req.Title)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrTitleExists
		}
		lib.Title = strings.TrimSpace(*req.Title)
	}

	if req.Description != nil {
		lib.Description = *req.Description
	}
	if req.Level != nil {
		lib.Level = *req.Level
	}
	if req.Icon != nil {
		lib.Icon = *req.Icon
	}

	if err := s.repo.UpdateLibrary(ctx, lib); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrTitleExists
		}
		return nil, err
	}

	resp := toLibraryResponse(lib)
	return &resp, nil
}

func (s *Service) DeleteLibrary(ctx context.Context, id string) error {
	return s.repo.DeleteLibrary(ctx, id)
}

// CreateContent verifies the parent library exists up front so an
// unknown library reads as 404, not as a bare constraint violation.
func (s *Service) CreateContent(
	ctx context.Context,
	req CreateContentRequest,
) (*ContentResponse, error) {
	if _, err := s.repo.GetLibrary(ctx, req.LibraryID); err != nil {
		return nil, err
	}

	exists, err := s.repo.ContentExistsByTitle(ctx, req.Title)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrTitleExists
	}

	c := &Content{
		ID:          uuid.New().String(),
		LibraryID:   req.LibraryID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Prompt:      req.Prompt,
		Method:      req.Method,
		Icon:        req.Icon,
		VideoURL:    req.VideoURL,
	}

	if err := s.repo.CreateContent(ctx, c); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrTitleExists
		}
		return nil, err
	}

	resp := toContentResponse(c)
	return &resp, nil
}

func (s *Service) GetContent(
	ctx context.Context,
	id string,
) (*ContentResponse, error) {
	c, err := s.repo.GetContent(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toContentResponse(c)
	return &resp, nil
}

func (s *Service) ListByLibrary(
	ctx context.Context,
	libraryID string,
) ([]ContentResponse, error) {
	if _, err := s.repo.GetLibrary(ctx, libraryID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByLibrary(ctx, libraryID)
	if err != nil {
		return nil, err
	}

	resp := make([]ContentResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toContentResponse(&items[i]))
	}

	return resp, nil
}

func (s *Service) UpdateContent(
	ctx context.Context,
	id string,
	req UpdateContentRequest,
) (*ContentResponse, error) {
	c, err := s.repo.GetContent(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && !strings.EqualFold(*req.Title, c.Title) {
		exists, err := s.repo.ContentExistsByTitle(ctx, *req.Title)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrTitleExists
		}
		c.Title = strings.TrimSpace(*req.Title)
	}

	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Prompt != nil {
		c.Prompt = *req.Prompt
	}
	if req.Method != nil {
		c.Method = req.Method
	}
	if req.Icon != nil {
		c.Icon = req.Icon
	}
	if req.VideoURL != nil {
		c.VideoURL = req.VideoURL
	}

	if err := s.repo.UpdateContent(ctx, c); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrTitleExists
		}
		return nil, err
	}

	resp := toContentResponse(c)
	return &resp, nil
}

func (s *Service) DeleteContent(ctx context.Context, id string) error {
	return s.repo.DeleteContent(ctx, id)
}
