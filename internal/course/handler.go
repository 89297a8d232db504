// AngelaMos | 2026
// handler.go

package course

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/promptacademy/platform-api/internal/core"
	"github.com/promptacademy/platform-api/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts public reads behind optional auth so
// anonymous visitors still see the catalog, and gates writes behind
// admin.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	optionalAuth func(http.Handler) http.Handler,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/courses", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(optionalAuth)
			r.Get("/", h.List)
			r.Get("/{courseID}", h.GetByID)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(middleware.RequireAdmin)
			r.Post("/", h.Create)
			r.Put("/{courseID}", h.Update)
			r.Delete("/{courseID}", h.Delete)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListCoursesParams{
		IncludeInactive: middleware.IsAdmin(r.Context()) &&
			r.URL.Query().Get("include_inactive") == "true",
	}
	params.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	params.PageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))
	params.Normalize()

	viewerID := middleware.GetUserID(r.Context())

	courses, total, err := h.service.List(r.Context(), params, viewerID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, courses, params.Page, params.PageSize, total)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	viewerID := middleware.GetUserID(r.Context())

	course, err := h.service.GetByID(r.Context(), courseID, viewerID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "course")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, course)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	course, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrTitleExists) {
			core.JSONError(w, core.DuplicateError("title"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, course)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")

	var req UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	course, err := h.service.Update(r.Context(), courseID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "course")
			return
		}
		if errors.Is(err, ErrTitleExists) {
			core.JSONError(w, core.DuplicateError("title"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, course)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")

	if err := h.service.Delete(r.Context(), courseID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "course")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
