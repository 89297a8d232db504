// AngelaMos | 2026
// handler.go

package content

import (
	"encoding/json"
	"errors"
	"net/http"

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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/libraries", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.ListLibraries)
		r.Get("/{libraryID}", h.GetLibrary)
		r.Get("/{libraryID}/contents", h.ListContents)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Post("/", h.CreateLibrary)
			r.Put("/{libraryID}", h.UpdateLibrary)
			r.Delete("/{libraryID}", h.DeleteLibrary)
		})
	})

	r.Route("/contents", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/{contentID}", h.GetContent)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Post("/", h.CreateContent)
			r.Put("/{contentID}", h.UpdateContent)
			r.Delete("/{contentID}", h.DeleteContent)
		})
	})
}

func (h *Handler) CreateLibrary(w http.ResponseWriter, r *http.Request) {
	var req CreateLibraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	lib, err := h.service.CreateLibrary(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrTitleExists) {
			core.JSONError(w, core.DuplicateError("title"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, lib)
}

func (h *Handler) GetLibrary(w http.ResponseWriter, r *http.Request) {
	lib, err := h.service.GetLibrary(r.Context(), chi.URLParam(r, "libraryID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "library")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, lib)
}

func (h *Handler) ListLibraries(w http.ResponseWriter, r *http.Request) {
	libs, err := h.service.ListLibraries(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, libs)
}

func (h *Handler) UpdateLibrary(w http.ResponseWriter, r *http.Request) {
	var req UpdateLibraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	lib, err := h.service.UpdateLibrary(
		r.Context(),
		chi.URLParam(r, "libraryID"),
		req,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "library")
			return
		}
		if errors.Is(err, ErrTitleExists) {
			core.JSONError(w, core.DuplicateError("title"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, lib)
}

func (h *Handler) DeleteLibrary(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteLibrary(r.Context(), chi.URLParam(r, "libraryID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "library")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) CreateContent(w http.ResponseWriter, r *http.Request) {
	var req CreateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	item, err := h.service.CreateContent(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "library")
			return
		}
		if errors.Is(err, ErrTitleExists) {
			core.JSONError(w, core.DuplicateError("title"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, item)
}

func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetContent(r.Context(), chi.URLParam(r, "contentID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "content")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, item)
}

func (h *Handler) ListContents(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListByLibrary(
		r.Context(),
		chi.URLParam(r, "libraryID"),
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "library")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, items)
}

func (h *Handler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	var req UpdateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	item, err := h.service.UpdateContent(
		r.Context(),
		chi.URLParam(r, "contentID"),
		req,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "content")
			return
		}
		if errors.Is(err, ErrTitleExists) {
			core.JSONError(w, core.DuplicateError("title"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, item)
}

func (h *Handler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteContent(r.Context(), chi.URLParam(r, "contentID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "content")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
