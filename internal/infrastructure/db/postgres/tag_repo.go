package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/bookverse/bookverse-api/internal/domain"
)

type TagRepo struct {
	db *sql.DB
}

func NewTagRepo(db *sql.DB) *TagRepo {
	return &TagRepo{db: db}
}

const tagCols = `id, name, created_at`

func scanTag(s interface{ Scan(...any) error }) (domain.Tag, error) {
	var t domain.Tag
	err := s.Scan(&t.ID, &t.Name, &t.CreatedAt)
	return t, err
}

func (r *TagRepo) Create(ctx context.Context, t domain.Tag) (domain.Tag, error) {
	if t.ID == "" {
		return domain.Tag{}, domain.ErrMissingField("id")
	}
	if strings.TrimSpace(t.Name) == "" {
		return domain.Tag{}, domain.ErrMissingField("name")
	}

	const q = `
INSERT INTO tags (id, name)
VALUES ($1,$2)
RETURNING ` + tagCols + `;
`
	created, err := scanTag(r.db.QueryRowContext(ctx, q, t.ID, t.Name))
	if err != nil {
		if isDuplicate(err) {
			return domain.Tag{}, domain.ErrTagAlreadyExists()
		}
		return domain.Tag{}, domain.ErrDBUnavailable(err)
	}
	return created, nil
}

func (r *TagRepo) GetByID(ctx context.Context, id string) (domain.Tag, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Tag{}, domain.ErrMissingField("id")
	}

	const q = `
SELECT ` + tagCols + `
FROM tags
WHERE id = $1
LIMIT 1;
`
	t, err := scanTag(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Tag{}, domain.ErrTagNotFound()
		}
		return domain.Tag{}, domain.ErrDBUnavailable(err)
	}
	return t, nil
}

func (r *TagRepo) GetByName(ctx context.Context, name string) (domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Tag{}, domain.ErrMissingField("name")
	}

	const q = `
SELECT ` + tagCols + `
FROM tags
WHERE name = $1
LIMIT 1;
`
	t, err := scanTag(r.db.QueryRowContext(ctx, q, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Tag{}, domain.ErrTagNotFound()
		}
		return domain.Tag{}, domain.ErrDBUnavailable(err)
	}
	return t, nil
}

func (r *TagRepo) List(ctx context.Context) ([]domain.Tag, error) {
	const q = `
SELECT ` + tagCols + `
FROM tags
ORDER BY created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := make([]domain.Tag, 0)
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *TagRepo) Update(ctx context.Context, t domain.Tag) (domain.Tag, error) {
	const q = `
UPDATE tags
SET name = $2
WHERE id = $1
RETURNING ` + tagCols + `;
`
	updated, err := scanTag(r.db.QueryRowContext(ctx, q, t.ID, t.Name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Tag{}, domain.ErrTagNotFound()
		}
		if isDuplicate(err) {
			return domain.Tag{}, domain.ErrTagAlreadyExists()
		}
		return domain.Tag{}, domain.ErrDBUnavailable(err)
	}
	return updated, nil
}

func (r *TagRepo) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrMissingField("id")
	}

	const q = `DELETE FROM tags WHERE id = $1;`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrTagNotFound()
	}
	return nil
}

// AttachToBook links a tag to a book; re-attaching is a no-op.
func (r *TagRepo) AttachToBook(ctx context.Context, bookID, tagID string) error {
	const q = `
INSERT INTO book_tags (book_id, tag_id)
VALUES ($1,$2)
ON CONFLICT DO NOTHING;
`
	if _, err := r.db.ExecContext(ctx, q, bookID, tagID); err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}

func (r *TagRepo) ListByBook(ctx context.Context, bookID string) ([]domain.Tag, error) {
	const q = `
SELECT t.id, t.name, t.created_at
FROM tags t
JOIN book_tags bt ON bt.tag_id = t.id
WHERE bt.book_id = $1
ORDER BY t.name;
`
	rows, err := r.db.QueryContext(ctx, q, bookID)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := make([]domain.Tag, 0)
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}
