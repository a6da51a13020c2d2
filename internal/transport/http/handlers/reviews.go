package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookverse/bookverse-api/internal/application/review"
	"github.com/bookverse/bookverse-api/internal/transport/http/dto"
	"github.com/bookverse/bookverse-api/internal/transport/http/response"
	"github.com/bookverse/bookverse-api/internal/transport/http/validate"
)

type ReviewHandler struct {
	svc *review.Service
}

func NewReviewHandler(svc *review.Service) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// AddToBook handles POST /api/v1/reviews/book/{book_uid}.
func (h *ReviewHandler) AddToBook(w http.ResponseWriter, r *http.Request) {
	u, err := actor(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.AddReviewRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	rev, err := h.svc.AddToBook(r.Context(), review.AddCmd{
		ActorID: u.ID,
		BookID:  chi.URLParam(r, "book_uid"),
		Rating:  req.Rating,
		Text:    req.Text,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.Created(w, dto.NewReviewView(rev))
}

// List handles GET /api/v1/reviews (admin only, enforced by the router).
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.svc.List(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewReviewViews(reviews))
}

// Get handles GET /api/v1/reviews/{review_uid}.
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	rev, err := h.svc.Get(r.Context(), chi.URLParam(r, "review_uid"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewReviewView(rev))
}

// Delete handles DELETE /api/v1/reviews/{review_uid}. Only the review's
// author or an admin may delete it.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u, err := actor(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), u.ID, u.Role, chi.URLParam(r, "review_uid")); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.NoContent(w)
}
