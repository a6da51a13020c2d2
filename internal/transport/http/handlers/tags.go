package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookverse/bookverse-api/internal/application/tag"
	"github.com/bookverse/bookverse-api/internal/transport/http/dto"
	"github.com/bookverse/bookverse-api/internal/transport/http/response"
	"github.com/bookverse/bookverse-api/internal/transport/http/validate"
)

type TagHandler struct {
	svc *tag.Service
}

func NewTagHandler(svc *tag.Service) *TagHandler {
	return &TagHandler{svc: svc}
}

// List handles GET /api/v1/tags.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.List(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewTagViews(tags))
}

// Create handles POST /api/v1/tags.
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TagRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	t, err := h.svc.Create(r.Context(), req.Name)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.Created(w, dto.NewTagView(t))
}

// AttachToBook handles POST /api/v1/tags/book/{book_uid}/tags; missing
// tags are created on the fly.
func (h *TagHandler) AttachToBook(w http.ResponseWriter, r *http.Request) {
	var req dto.AttachTagsRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	names := make([]string, 0, len(req.Tags))
	for _, t := range req.Tags {
		names = append(names, t.Name)
	}

	tags, err := h.svc.AttachToBook(r.Context(), chi.URLParam(r, "book_uid"), names)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewTagViews(tags))
}

// Update handles PUT /api/v1/tags/{tag_uid}.
func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.TagRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	t, err := h.svc.Update(r.Context(), chi.URLParam(r, "tag_uid"), req.Name)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewTagView(t))
}

// Delete handles DELETE /api/v1/tags/{tag_uid}.
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "tag_uid")); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.NoContent(w)
}
