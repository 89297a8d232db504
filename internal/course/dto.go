// AngelaMos | 2026
// dto.go

package course

import "time"

type CreateCourseRequest struct {
	Title       string   `json:"title"       validate:"required,min=2,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	ImageURL    string   `json:"image_url"   validate:"omitempty,url"`
	Price       int64    `json:"price"       validate:"gte=0"`
	Active      *bool    `json:"active"`
	Modules     []string `json:"modules"     validate:"dive,max=500"`
}

type UpdateCourseRequest struct {
	Title       *string  `json:"title"       validate:"omitempty,min=2,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	ImageURL    *string  `json:"image_url"   validate:"omitempty,url"`
	Price       *int64   `json:"price"       validate:"omitempty,gte=0"`
	Active      *bool    `json:"active"`
	Modules     []string `json:"modules"     validate:"omitempty,dive,max=500"`
}

type ListCoursesParams struct {
	Page            int
	PageSize        int
	IncludeInactive bool
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func (p *ListCoursesParams) Normalize() {
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

func (p *ListCoursesParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// CourseResponse carries per-viewer access annotations alongside the
// course itself. RequiredPayment is how much more the viewer must pay
// in total before the course unlocks; zero when already accessible.
type CourseResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ImageURL        string    `json:"image_url,omitempty"`
	Price           int64     `json:"price"`
	AccessTier      string    `json:"access_tier"`
	Active          bool      `json:"active"`
	Modules         []string  `json:"modules"`
	CanAccess       bool      `json:"can_access"`
	RequiredPayment int64     `json:"required_payment"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
