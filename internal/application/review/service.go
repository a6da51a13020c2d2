package review

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/bookverse/bookverse-api/internal/domain"
)

type ReviewRepo interface {
	Create(ctx context.Context, rv domain.Review) (domain.Review, error)
	GetByID(ctx context.Context, id string) (domain.Review, error)
	List(ctx context.Context) ([]domain.Review, error)
	Delete(ctx context.Context, id string) error
}

type BookReader interface {
	GetByID(ctx context.Context, id string) (domain.Book, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
}

type Service struct {
	repo  ReviewRepo
	books BookReader
	users UserReader
}

func New(repo ReviewRepo, books BookReader, users UserReader) *Service {
	return &Service{repo: repo, books: books, users: users}
}

type AddCmd struct {
	ActorID string
	BookID  string
	Rating  int
	Text    string
}

// AddToBook attaches a review to a book. Both the book and the acting user
// must exist.
func (s *Service) AddToBook(ctx context.Context, cmd AddCmd) (domain.Review, error) {
	if cmd.Rating < 1 || cmd.Rating > 5 {
		return domain.Review{}, domain.ErrInvalidField("rating", "must be between 1 and 5")
	}
	if strings.TrimSpace(cmd.Text) == "" {
		return domain.Review{}, domain.ErrMissingField("review_text")
	}

	if _, err := s.books.GetByID(ctx, cmd.BookID); err != nil {
		return domain.Review{}, err
	}
	u, err := s.users.GetByID(ctx, cmd.ActorID)
	if err != nil {
		return domain.Review{}, err
	}

	rv := domain.Review{
		ID:     uuid.NewString(),
		Rating: cmd.Rating,
		Text:   cmd.Text,
		BookID: cmd.BookID,
		UserID: u.ID,
	}
	return s.repo.Create(ctx, rv)
}

func (s *Service) List(ctx context.Context) ([]domain.Review, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (domain.Review, error) {
	return s.repo.GetByID(ctx, id)
}

// Delete removes a review. Reviews may be deleted by their author or by an
// admin.
func (s *Service) Delete(ctx context.Context, actorID, actorRole, reviewID string) error {
	rv, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if rv.UserID != actorID && actorRole != string(domain.RoleAdmin) {
		return domain.ErrForbidden()
	}
	return s.repo.Delete(ctx, reviewID)
}
