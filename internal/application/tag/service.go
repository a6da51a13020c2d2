package tag

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/bookverse/bookverse-api/internal/domain"
)

type TagRepo interface {
	Create(ctx context.Context, t domain.Tag) (domain.Tag, error)
	GetByID(ctx context.Context, id string) (domain.Tag, error)
	GetByName(ctx context.Context, name string) (domain.Tag, error)
	List(ctx context.Context) ([]domain.Tag, error)
	Update(ctx context.Context, t domain.Tag) (domain.Tag, error)
	Delete(ctx context.Context, id string) error

	AttachToBook(ctx context.Context, bookID, tagID string) error
	ListByBook(ctx context.Context, bookID string) ([]domain.Tag, error)
}

type BookReader interface {
	GetByID(ctx context.Context, id string) (domain.Book, error)
}

type Service struct {
	repo  TagRepo
	books BookReader
}

func New(repo TagRepo, books BookReader) *Service {
	return &Service{repo: repo, books: books}
}

func (s *Service) List(ctx context.Context) ([]domain.Tag, error) {
	return s.repo.List(ctx)
}

// Create adds a tag; duplicate names are a conflict.
func (s *Service) Create(ctx context.Context, name string) (domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Tag{}, domain.ErrMissingField("name")
	}

	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return domain.Tag{}, domain.ErrTagAlreadyExists()
	}

	return s.repo.Create(ctx, domain.Tag{ID: uuid.NewString(), Name: name})
}

func (s *Service) Update(ctx context.Context, id, name string) (domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Tag{}, domain.ErrMissingField("name")
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Tag{}, err
	}
	t.Name = name
	return s.repo.Update(ctx, t)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// AttachToBook links the named tags to a book, creating any that do not
// exist yet, and returns the book's resulting tag set.
func (s *Service) AttachToBook(ctx context.Context, bookID string, names []string) ([]domain.Tag, error) {
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		return nil, err
	}

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		t, err := s.repo.GetByName(ctx, name)
		if err != nil {
			if !domain.Is(err, "tag_not_found") {
				return nil, err
			}
			t, err = s.repo.Create(ctx, domain.Tag{ID: uuid.NewString(), Name: name})
			if err != nil {
				return nil, err
			}
		}

		if err := s.repo.AttachToBook(ctx, bookID, t.ID); err != nil {
			return nil, err
		}
	}

	return s.repo.ListByBook(ctx, bookID)
}
