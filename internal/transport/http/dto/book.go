package dto

import (
	"time"

	"github.com/bookverse/bookverse-api/internal/application/book"
	"github.com/bookverse/bookverse-api/internal/domain"
)

type CreateBookRequest struct {
	Title         string    `json:"title" validate:"required,max=256"`
	Author        string    `json:"author" validate:"required,max=256"`
	Publisher     string    `json:"publisher" validate:"max=256"`
	PublishedDate time.Time `json:"published_date"`
	PageCount     int       `json:"page_count" validate:"gte=0"`
	Language      string    `json:"language" validate:"max=32"`
}

// UpdateBookRequest is a partial update; absent fields stay untouched.
type UpdateBookRequest struct {
	Title         *string    `json:"title" validate:"omitempty,max=256"`
	Author        *string    `json:"author" validate:"omitempty,max=256"`
	Publisher     *string    `json:"publisher" validate:"omitempty,max=256"`
	PublishedDate *time.Time `json:"published_date"`
	PageCount     *int       `json:"page_count" validate:"omitempty,gte=0"`
	Language      *string    `json:"language" validate:"omitempty,max=32"`
}

type BookView struct {
	ID            string    `json:"uid"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Publisher     string    `json:"publisher"`
	PublishedDate time.Time `json:"published_date"`
	PageCount     int       `json:"page_count"`
	Language      string    `json:"language"`
	OwnerID       string    `json:"user_uid"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type BookDetailView struct {
	BookView
	Reviews []ReviewView `json:"reviews"`
	Tags    []TagView    `json:"tags"`
}

func NewBookView(b domain.Book) BookView {
	return BookView{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Publisher:     b.Publisher,
		PublishedDate: b.PublishedDate,
		PageCount:     b.PageCount,
		Language:      b.Language,
		OwnerID:       b.OwnerID,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func NewBookViews(books []domain.Book) []BookView {
	out := make([]BookView, 0, len(books))
	for _, b := range books {
		out = append(out, NewBookView(b))
	}
	return out
}

func NewBookDetailView(d book.Detail) BookDetailView {
	return BookDetailView{
		BookView: NewBookView(d.Book),
		Reviews:  NewReviewViews(d.Reviews),
		Tags:     NewTagViews(d.Tags),
	}
}
