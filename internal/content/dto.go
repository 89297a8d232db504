// AngelaMos | 2026
// dto.go

package content

import "time"

type CreateLibraryRequest struct {
	Title       string `json:"title"       validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"required,max=2000"`
	Level       string `json:"level"       validate:"required,oneof=beginner intermediate advanced"`
	Icon        string `json:"icon"        validate:"max=100"`
}

type UpdateLibraryRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=2,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Level       *string `json:"level"       validate:"omitempty,oneof=beginner intermediate advanced"`
	Icon        *string `json:"icon"        validate:"omitempty,max=100"`
}

type CreateContentRequest struct {
	LibraryID   string  `json:"library_id"  validate:"required,uuid"`
	Title       string  `json:"title"       validate:"required,min=2,max=200"`
	Description string  `json:"description" validate:"required,max=2000"`
	Prompt      string  `json:"prompt"      validate:"required"`
	Method      *string `json:"method"`
	Icon        *string `json:"icon"        validate:"omitempty,max=100"`
	VideoURL    *string `json:"video_url"   validate:"omitempty,url"`
}

type UpdateContentRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=2,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Prompt      *string `json:"prompt"`
	Method      *string `json:"method"`
	Icon        *string `json:"icon"        validate:"omitempty,max=100"`
	VideoURL    *string `json:"video_url"   validate:"omitempty,url"`
}

type LibraryResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Level       string    `json:"level"`
	Icon        string    `json:"icon,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ContentResponse struct {
	ID          string    `json:"id"`
	LibraryID   string    `json:"library_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Prompt      string    `json:"prompt"`
	Method      *string   `json:"method,omitempty"`
	Icon        *string   `json:"icon,omitempty"`
	VideoURL    *string   `json:"video_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toLibraryResponse(l *Library) LibraryResponse {
	return LibraryResponse{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Level:       l.Level,
		Icon:        l.Icon,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func toContentResponse(c *Content) ContentResponse {
	return ContentResponse{
		ID:          c.ID,
		LibraryID:   c.LibraryID,
		Title:       c.Title,
		Description: c.Description,
		Prompt:      c.Prompt,
		Method:      c.Method,
		Icon:        c.Icon,
		VideoURL:    c.VideoURL,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
