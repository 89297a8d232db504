// AngelaMos | 2026
// handler.go

package media

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/promptacademy/platform-api/internal/core"
	"github.com/promptacademy/platform-api/internal/middleware"
)

const maxImageBytes = 5 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type Handler struct {
	storage   *Storage
	validator *validator.Validate
}

func NewHandler(storage *Storage) *Handler {
	return &Handler{
		storage:   storage,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/media", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middleware.RequireAdmin)

		r.Post("/images", h.UploadImage)
		r.Post("/videos/presign", h.PresignVideo)
		r.Delete("/*", h.DeleteObject)
	})
}

type presignRequest struct {
	Filename    string `json:"filename"     validate:"required,max=255"`
	ContentType string `json:"content_type" validate:"required,startswith=video/"`
}

type presignResponse struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
}

type uploadResponse struct {
	Key string `json:"key"`
}

// UploadImage accepts a small multipart image and stores it directly.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)

	file, header, err := r.FormFile("image")
	if err != nil {
		core.BadRequest(w, "image file required (max 5MB)")
		return
	}
	defer file.Close() //nolint:errcheck // request file close

	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		core.BadRequest(w, "unsupported image type: "+contentType)
		return
	}

	key := fmt.Sprintf("images/%s%s", uuid.New().String(), ext)

	if err := h.storage.Upload(r.Context(), key, contentType, file); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, uploadResponse{Key: key})
}

// DeleteObject removes a stored image or video by key, e.g. when an
// admin replaces course artwork.
func (h *Handler) DeleteObject(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if !strings.HasPrefix(key, "images/") && !strings.HasPrefix(key, "videos/") {
		core.BadRequest(w, "unknown media key")
		return
	}

	if err := h.storage.Delete(r.Context(), key); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

// PresignVideo hands the client a direct-upload URL; video files are
// too large to proxy through the API.
func (h *Handler) PresignVideo(w http.ResponseWriter, r *http.Request) {
	var req presignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	ext := strings.ToLower(path.Ext(req.Filename))
	key := fmt.Sprintf("videos/%s%s", uuid.New().String(), ext)

	uploadURL, err := h.storage.PresignUpload(r.Context(), key, req.ContentType)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, presignResponse{
		UploadURL: uploadURL,
		Key:       key,
	})
}
