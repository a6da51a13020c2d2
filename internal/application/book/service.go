package book

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bookverse/bookverse-api/internal/domain"
	"github.com/bookverse/bookverse-api/internal/logger"
)

type Service struct {
	repo    BookRepo
	reviews ReviewReader
	tags    TagReader
	cache   Cache

	ttlDetails time.Duration
}

func New(repo BookRepo, reviews ReviewReader, tags TagReader, cache Cache, ttlDetails time.Duration) *Service {
	if ttlDetails == 0 {
		ttlDetails = 5 * time.Minute
	}
	return &Service{
		repo:       repo,
		reviews:    reviews,
		tags:       tags,
		cache:      cache,
		ttlDetails: ttlDetails,
	}
}

// Detail is a book together with its reviews and tags.
type Detail struct {
	Book    domain.Book
	Reviews []domain.Review
	Tags    []domain.Tag
}

func cacheKeyBookDetail(id string) string { return "book:detail:" + id }

func canEdit(ownerID, actorID, actorRole string) bool {
	if actorID == "" {
		return false
	}
	if actorID == ownerID {
		return true
	}
	return actorRole == string(domain.RoleAdmin)
}

type CreateCmd struct {
	ActorID string

	Title         string
	Author        string
	Publisher     string
	PublishedDate time.Time
	PageCount     int
	Language      string
}

func (s *Service) Create(ctx context.Context, cmd CreateCmd) (domain.Book, error) {
	if strings.TrimSpace(cmd.Title) == "" {
		return domain.Book{}, domain.ErrMissingField("title")
	}
	if strings.TrimSpace(cmd.Author) == "" {
		return domain.Book{}, domain.ErrMissingField("author")
	}

	b := domain.Book{
		ID:            uuid.NewString(),
		Title:         cmd.Title,
		Author:        cmd.Author,
		Publisher:     cmd.Publisher,
		PublishedDate: cmd.PublishedDate,
		PageCount:     cmd.PageCount,
		Language:      cmd.Language,
		OwnerID:       cmd.ActorID,
	}
	return s.repo.Create(ctx, b)
}

func (s *Service) List(ctx context.Context) ([]domain.Book, error) {
	return s.repo.List(ctx)
}

// Get returns a book with its reviews and tags, cached best-effort.
func (s *Service) Get(ctx context.Context, id string) (Detail, error) {
	key := cacheKeyBookDetail(id)

	if s.cache != nil {
		var cached Detail
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.WithCtx(ctx).Warn().Err(err).Str("key", key).Msg("cache get failed")
		} else if found {
			return cached, nil
		}
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	reviews, err := s.reviews.ListByBook(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	tags, err := s.tags.ListByBook(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	d := Detail{Book: b, Reviews: reviews, Tags: tags}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, d, s.ttlDetails); err != nil {
			logger.WithCtx(ctx).Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}
	return d, nil
}

type UpdateCmd struct {
	ActorID   string
	ActorRole string
	BookID    string

	Title         *string
	Author        *string
	Publisher     *string
	PublishedDate *time.Time
	PageCount     *int
	Language      *string
}

func (s *Service) Update(ctx context.Context, cmd UpdateCmd) (domain.Book, error) {
	b, err := s.repo.GetByID(ctx, cmd.BookID)
	if err != nil {
		return domain.Book{}, err
	}
	if !canEdit(b.OwnerID, cmd.ActorID, cmd.ActorRole) {
		return domain.Book{}, domain.ErrForbidden()
	}

	if cmd.Title != nil {
		b.Title = *cmd.Title
	}
	if cmd.Author != nil {
		b.Author = *cmd.Author
	}
	if cmd.Publisher != nil {
		b.Publisher = *cmd.Publisher
	}
	if cmd.PublishedDate != nil {
		b.PublishedDate = *cmd.PublishedDate
	}
	if cmd.PageCount != nil {
		b.PageCount = *cmd.PageCount
	}
	if cmd.Language != nil {
		b.Language = *cmd.Language
	}

	updated, err := s.repo.Update(ctx, b)
	if err != nil {
		return domain.Book{}, err
	}
	s.invalidate(ctx, cmd.BookID)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, actorID, actorRole, bookID string) error {
	b, err := s.repo.GetByID(ctx, bookID)
	if err != nil {
		return err
	}
	if !canEdit(b.OwnerID, actorID, actorRole) {
		return domain.ErrForbidden()
	}
	if err := s.repo.Delete(ctx, bookID); err != nil {
		return err
	}
	s.invalidate(ctx, bookID)
	return nil
}

func (s *Service) invalidate(ctx context.Context, bookID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKeyBookDetail(bookID)); err != nil {
		logger.WithCtx(ctx).Warn().Err(err).Str("book_id", bookID).Msg("cache invalidate failed")
	}
}
