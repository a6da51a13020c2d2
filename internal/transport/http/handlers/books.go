package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookverse/bookverse-api/internal/application/book"
	"github.com/bookverse/bookverse-api/internal/domain"
	"github.com/bookverse/bookverse-api/internal/transport/http/dto"
	"github.com/bookverse/bookverse-api/internal/transport/http/middleware"
	"github.com/bookverse/bookverse-api/internal/transport/http/response"
	"github.com/bookverse/bookverse-api/internal/transport/http/validate"
)

type BookHandler struct {
	svc *book.Service
}

func NewBookHandler(svc *book.Service) *BookHandler {
	return &BookHandler{svc: svc}
}

// actor returns the authenticated user placed on the context by the guard.
func actor(r *http.Request) (domain.User, error) {
	u, ok := middleware.UserFrom(r.Context())
	if !ok {
		return domain.User{}, domain.ErrTokenMissing()
	}
	return u, nil
}

// List handles GET /api/v1/books.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.List(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewBookViews(books))
}

// Create handles POST /api/v1/books.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, err := actor(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.CreateBookRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	b, err := h.svc.Create(r.Context(), book.CreateCmd{
		ActorID:       u.ID,
		Title:         req.Title,
		Author:        req.Author,
		Publisher:     req.Publisher,
		PublishedDate: req.PublishedDate,
		PageCount:     req.PageCount,
		Language:      req.Language,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.Created(w, dto.NewBookView(b))
}

// Get handles GET /api/v1/books/{book_id}; returns the book with its
// reviews and tags.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.Get(r.Context(), chi.URLParam(r, "book_id"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewBookDetailView(detail))
}

// Update handles PATCH /api/v1/books/{book_id}.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	u, err := actor(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.UpdateBookRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	b, err := h.svc.Update(r.Context(), book.UpdateCmd{
		ActorID:       u.ID,
		ActorRole:     u.Role,
		BookID:        chi.URLParam(r, "book_id"),
		Title:         req.Title,
		Author:        req.Author,
		Publisher:     req.Publisher,
		PublishedDate: req.PublishedDate,
		PageCount:     req.PageCount,
		Language:      req.Language,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewBookView(b))
}

// Delete handles DELETE /api/v1/books/{book_id}.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u, err := actor(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), u.ID, u.Role, chi.URLParam(r, "book_id")); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.NoContent(w)
}
