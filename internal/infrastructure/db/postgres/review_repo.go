package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/bookverse/bookverse-api/internal/domain"
)

type ReviewRepo struct {
	db *sql.DB
}

func NewReviewRepo(db *sql.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

const reviewCols = `id, rating, review_text, book_id, user_id, created_at, updated_at`

func scanReview(s interface{ Scan(...any) error }) (domain.Review, error) {
	var rv domain.Review
	err := s.Scan(
		&rv.ID,
		&rv.Rating,
		&rv.Text,
		&rv.BookID,
		&rv.UserID,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)
	return rv, err
}

func (r *ReviewRepo) Create(ctx context.Context, rv domain.Review) (domain.Review, error) {
	if rv.ID == "" {
		return domain.Review{}, domain.ErrMissingField("id")
	}

	const q = `
INSERT INTO reviews (id, rating, review_text, book_id, user_id)
VALUES ($1,$2,$3,$4,$5)
RETURNING ` + reviewCols + `;
`
	created, err := scanReview(r.db.QueryRowContext(ctx, q,
		rv.ID, rv.Rating, rv.Text, rv.BookID, rv.UserID,
	))
	if err != nil {
		return domain.Review{}, domain.ErrDBUnavailable(err)
	}
	return created, nil
}

func (r *ReviewRepo) GetByID(ctx context.Context, id string) (domain.Review, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Review{}, domain.ErrMissingField("id")
	}

	const q = `
SELECT ` + reviewCols + `
FROM reviews
WHERE id = $1
LIMIT 1;
`
	rv, err := scanReview(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Review{}, domain.ErrReviewNotFound()
		}
		return domain.Review{}, domain.ErrDBUnavailable(err)
	}
	return rv, nil
}

func (r *ReviewRepo) List(ctx context.Context) ([]domain.Review, error) {
	const q = `
SELECT ` + reviewCols + `
FROM reviews
ORDER BY created_at DESC;
`
	return r.queryReviews(ctx, q)
}

func (r *ReviewRepo) ListByBook(ctx context.Context, bookID string) ([]domain.Review, error) {
	const q = `
SELECT ` + reviewCols + `
FROM reviews
WHERE book_id = $1
ORDER BY created_at DESC;
`
	return r.queryReviews(ctx, q, bookID)
}

func (r *ReviewRepo) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrMissingField("id")
	}

	const q = `DELETE FROM reviews WHERE id = $1;`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrReviewNotFound()
	}
	return nil
}

func (r *ReviewRepo) queryReviews(ctx context.Context, q string, args ...any) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := make([]domain.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}
