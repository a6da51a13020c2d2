package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/bookverse/bookverse-api/internal/domain"
)

type BookRepo struct {
	db *sql.DB
}

func NewBookRepo(db *sql.DB) *BookRepo {
	return &BookRepo{db: db}
}

const bookCols = `id, title, author, publisher, published_date, page_count, language, owner_id, created_at, updated_at`

func scanBook(s interface{ Scan(...any) error }) (domain.Book, error) {
	var b domain.Book
	err := s.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Publisher,
		&b.PublishedDate,
		&b.PageCount,
		&b.Language,
		&b.OwnerID,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

func (r *BookRepo) Create(ctx context.Context, b domain.Book) (domain.Book, error) {
	if b.ID == "" {
		return domain.Book{}, domain.ErrMissingField("id")
	}

	const q = `
INSERT INTO books (id, title, author, publisher, published_date, page_count, language, owner_id)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING ` + bookCols + `;
`
	created, err := scanBook(r.db.QueryRowContext(ctx, q,
		b.ID, b.Title, b.Author, b.Publisher, b.PublishedDate, b.PageCount, b.Language, b.OwnerID,
	))
	if err != nil {
		return domain.Book{}, domain.ErrDBUnavailable(err)
	}
	return created, nil
}

func (r *BookRepo) GetByID(ctx context.Context, id string) (domain.Book, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Book{}, domain.ErrMissingField("id")
	}

	const q = `
SELECT ` + bookCols + `
FROM books
WHERE id = $1
LIMIT 1;
`
	b, err := scanBook(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Book{}, domain.ErrBookNotFound()
		}
		return domain.Book{}, domain.ErrDBUnavailable(err)
	}
	return b, nil
}

func (r *BookRepo) List(ctx context.Context) ([]domain.Book, error) {
	const q = `
SELECT ` + bookCols + `
FROM books
ORDER BY created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := make([]domain.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *BookRepo) Update(ctx context.Context, b domain.Book) (domain.Book, error) {
	const q = `
UPDATE books
SET title = $2,
    author = $3,
    publisher = $4,
    published_date = $5,
    page_count = $6,
    language = $7,
    updated_at = NOW()
WHERE id = $1
RETURNING ` + bookCols + `;
`
	updated, err := scanBook(r.db.QueryRowContext(ctx, q,
		b.ID, b.Title, b.Author, b.Publisher, b.PublishedDate, b.PageCount, b.Language,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Book{}, domain.ErrBookNotFound()
		}
		return domain.Book{}, domain.ErrDBUnavailable(err)
	}
	return updated, nil
}

func (r *BookRepo) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrMissingField("id")
	}

	const q = `DELETE FROM books WHERE id = $1;`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrBookNotFound()
	}
	return nil
}
