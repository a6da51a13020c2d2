package dto

import (
	"time"

	"github.com/bookverse/bookverse-api/internal/domain"
)

type TagRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

type AttachTagsRequest struct {
	Tags []TagRequest `json:"tags" validate:"required,min=1,dive"`
}

type TagView struct {
	ID        string    `json:"uid"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewTagView(t domain.Tag) TagView {
	return TagView{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt}
}

func NewTagViews(tags []domain.Tag) []TagView {
	out := make([]TagView, 0, len(tags))
	for _, t := range tags {
		out = append(out, NewTagView(t))
	}
	return out
}
