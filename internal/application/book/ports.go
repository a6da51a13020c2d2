package book

import (
	"context"
	"time"

	"github.com/bookverse/bookverse-api/internal/domain"
)

type BookRepo interface {
	Create(ctx context.Context, b domain.Book) (domain.Book, error)
	GetByID(ctx context.Context, id string) (domain.Book, error)
	List(ctx context.Context) ([]domain.Book, error)
	Update(ctx context.Context, b domain.Book) (domain.Book, error)
	Delete(ctx context.Context, id string) error
}

type ReviewReader interface {
	ListByBook(ctx context.Context, bookID string) ([]domain.Review, error)
}

type TagReader interface {
	ListByBook(ctx context.Context, bookID string) ([]domain.Tag, error)
}

// Cache is best-effort: failures degrade to the database, never the request.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
