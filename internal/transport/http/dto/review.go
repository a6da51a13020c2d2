package dto

import (
	"time"

	"github.com/bookverse/bookverse-api/internal/domain"
)

type AddReviewRequest struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
	Text   string `json:"review_text" validate:"required,max=4096"`
}

type ReviewView struct {
	ID        string    `json:"uid"`
	Rating    int       `json:"rating"`
	Text      string    `json:"review_text"`
	BookID    string    `json:"book_uid"`
	UserID    string    `json:"user_uid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewReviewView(r domain.Review) ReviewView {
	return ReviewView{
		ID:        r.ID,
		Rating:    r.Rating,
		Text:      r.Text,
		BookID:    r.BookID,
		UserID:    r.UserID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func NewReviewViews(reviews []domain.Review) []ReviewView {
	out := make([]ReviewView, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, NewReviewView(r))
	}
	return out
}
