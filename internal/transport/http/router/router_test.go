package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookverse/bookverse-api/internal/application/auth"
	"github.com/bookverse/bookverse-api/internal/application/book"
	"github.com/bookverse/bookverse-api/internal/application/review"
	"github.com/bookverse/bookverse-api/internal/application/tag"
	"github.com/bookverse/bookverse-api/internal/config"
	"github.com/bookverse/bookverse-api/internal/domain"
	"github.com/bookverse/bookverse-api/internal/infrastructure/memory"
	"github.com/bookverse/bookverse-api/internal/infrastructure/security"
	"github.com/bookverse/bookverse-api/internal/logger"
	"github.com/bookverse/bookverse-api/internal/transport/http/handlers"
	"github.com/bookverse/bookverse-api/internal/transport/http/middleware"
)

func TestMain(m *testing.M) {
	logger.InitWithWriter(io.Discard)
	os.Exit(m.Run())
}

/*
In-memory book/review/tag repos; just enough for routing tests.
*/

type memBookRepo struct{ byID map[string]domain.Book }

func (r *memBookRepo) Create(ctx context.Context, b domain.Book) (domain.Book, error) {
	r.byID[b.ID] = b
	return b, nil
}

func (r *memBookRepo) GetByID(ctx context.Context, id string) (domain.Book, error) {
	b, ok := r.byID[id]
	if !ok {
		return domain.Book{}, domain.ErrBookNotFound()
	}
	return b, nil
}

func (r *memBookRepo) List(ctx context.Context) ([]domain.Book, error) {
	out := make([]domain.Book, 0, len(r.byID))
	for _, b := range r.byID {
		out = append(out, b)
	}
	return out, nil
}

func (r *memBookRepo) Update(ctx context.Context, b domain.Book) (domain.Book, error) {
	r.byID[b.ID] = b
	return b, nil
}

func (r *memBookRepo) Delete(ctx context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type memReviewRepo struct{ byID map[string]domain.Review }

func (r *memReviewRepo) Create(ctx context.Context, rv domain.Review) (domain.Review, error) {
	r.byID[rv.ID] = rv
	return rv, nil
}

func (r *memReviewRepo) GetByID(ctx context.Context, id string) (domain.Review, error) {
	rv, ok := r.byID[id]
	if !ok {
		return domain.Review{}, domain.ErrReviewNotFound()
	}
	return rv, nil
}

func (r *memReviewRepo) List(ctx context.Context) ([]domain.Review, error) { return nil, nil }

func (r *memReviewRepo) Delete(ctx context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *memReviewRepo) ListByBook(ctx context.Context, bookID string) ([]domain.Review, error) {
	return nil, nil
}

type memTagRepo struct{ byID map[string]domain.Tag }

func (r *memTagRepo) Create(ctx context.Context, t domain.Tag) (domain.Tag, error) {
	r.byID[t.ID] = t
	return t, nil
}

func (r *memTagRepo) GetByID(ctx context.Context, id string) (domain.Tag, error) {
	t, ok := r.byID[id]
	if !ok {
		return domain.Tag{}, domain.ErrTagNotFound()
	}
	return t, nil
}

func (r *memTagRepo) GetByName(ctx context.Context, name string) (domain.Tag, error) {
	for _, t := range r.byID {
		if t.Name == name {
			return t, nil
		}
	}
	return domain.Tag{}, domain.ErrTagNotFound()
}

func (r *memTagRepo) List(ctx context.Context) ([]domain.Tag, error) { return nil, nil }

func (r *memTagRepo) Update(ctx context.Context, t domain.Tag) (domain.Tag, error) {
	r.byID[t.ID] = t
	return t, nil
}

func (r *memTagRepo) Delete(ctx context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *memTagRepo) AttachToBook(ctx context.Context, bookID, tagID string) error { return nil }

func (r *memTagRepo) ListByBook(ctx context.Context, bookID string) ([]domain.Tag, error) {
	return nil, nil
}

type testApp struct {
	handler http.Handler
	users   *memory.UserRepo
	authSvc *auth.Service
}

func newTestApp(t *testing.T, cfg *config.Config) *testApp {
	t.Helper()

	if cfg == nil {
		cfg = &config.Config{RLEnabled: false}
	}

	users := memory.NewUserRepo()
	revoked := memory.NewRevocationStore()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	codec := security.NewJWTCodec("router-test-secret", "bookverse-api")
	pub := memory.NewNoopPublisher()

	authSvc := auth.NewService(users, hasher, codec, revoked, pub, auth.Config{
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 48 * time.Hour,
		Domain:     "http://localhost:8080",
	})

	books := &memBookRepo{byID: map[string]domain.Book{}}
	reviews := &memReviewRepo{byID: map[string]domain.Review{}}
	tags := &memTagRepo{byID: map[string]domain.Tag{}}

	bookSvc := book.New(books, reviews, tags, nil, time.Minute)
	reviewSvc := review.New(reviews, books, users)
	tagSvc := tag.New(tags, books)

	guard := middleware.NewGuard(codec, revoked, users)

	h := New(Deps{
		Auth:    handlers.NewAuthHandler(authSvc),
		Books:   handlers.NewBookHandler(bookSvc),
		Reviews: handlers.NewReviewHandler(reviewSvc),
		Tags:    handlers.NewTagHandler(tagSvc),
		Guard:   guard,
		Cfg:     cfg,
	})

	return &testApp{handler: h, users: users, authSvc: authSvc}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dst))
}

type tokensView struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (a *testApp) signupAndLogin(t *testing.T, email, password string, verified bool) tokensView {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "bob",
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	if verified {
		u, err := a.users.GetByEmail(context.Background(), email)
		require.NoError(t, err)
		require.NoError(t, a.users.SetVerified(context.Background(), u.ID))
	}

	rec = a.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var view struct {
		Tokens tokensView `json:"tokens"`
	}
	decodeData(t, rec, &view)
	require.NotEmpty(t, view.Tokens.AccessToken)
	require.NotEmpty(t, view.Tokens.RefreshToken)
	return view.Tokens
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.do(t, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSignup_InvalidBody_400(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "bob",
		"email":    "not-an-email",
		"password": "longenough",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMe_UnverifiedUser_401(t *testing.T) {
	app := newTestApp(t, nil)
	toks := app.signupAndLogin(t, "a@b.com", "secretpw1", false)

	rec := app.do(t, http.MethodGet, "/api/v1/auth/me", toks.AccessToken, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe_VerifiedUser_200(t *testing.T) {
	app := newTestApp(t, nil)
	toks := app.signupAndLogin(t, "a@b.com", "secretpw1", true)

	rec := app.do(t, http.MethodGet, "/api/v1/auth/me", toks.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var me struct {
		Email string `json:"email"`
	}
	decodeData(t, rec, &me)
	require.Equal(t, "a@b.com", me.Email)
}

func TestRefreshThenLogoutFlow(t *testing.T) {
	app := newTestApp(t, nil)
	toks := app.signupAndLogin(t, "a@b.com", "secretpw1", true)

	// access token on the refresh route is a kind mismatch
	rec := app.do(t, http.MethodGet, "/api/v1/auth/refresh_token", toks.AccessToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/v1/auth/refresh_token", toks.RefreshToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var fresh tokensView
	decodeData(t, rec, &fresh)
	require.NotEmpty(t, fresh.AccessToken)
	require.Empty(t, fresh.RefreshToken)

	// logout revokes the presented access token
	rec = app.do(t, http.MethodGet, "/api/v1/auth/logout", toks.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/v1/auth/me", toks.AccessToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// the fresh access token is unaffected
	rec = app.do(t, http.MethodGet, "/api/v1/auth/me", fresh.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestBooks_RequireAuth(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.do(t, http.MethodGet, "/api/v1/books/", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBooks_CreateAndGet(t *testing.T) {
	app := newTestApp(t, nil)
	toks := app.signupAndLogin(t, "a@b.com", "secretpw1", true)

	rec := app.do(t, http.MethodPost, "/api/v1/books/", toks.AccessToken, map[string]any{
		"title":  "The Go Programming Language",
		"author": "Donovan & Kernighan",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID      string `json:"uid"`
		OwnerID string `json:"user_uid"`
	}
	decodeData(t, rec, &created)
	require.NotEmpty(t, created.ID)
	require.NotEmpty(t, created.OwnerID)

	rec = app.do(t, http.MethodGet, "/api/v1/books/"+created.ID, toks.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestReviews_ListIsAdminOnly(t *testing.T) {
	app := newTestApp(t, nil)
	toks := app.signupAndLogin(t, "a@b.com", "secretpw1", true)

	rec := app.do(t, http.MethodGet, "/api/v1/reviews/", toks.AccessToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthRoutes_RateLimited(t *testing.T) {
	app := newTestApp(t, &config.Config{
		RLEnabled: true,
		RLLimit:   2,
		RLWindow:  time.Minute,
	})

	body := map[string]string{"email": "a@b.com", "password": "whatever1"}
	for i := 0; i < 2; i++ {
		rec := app.do(t, http.MethodPost, "/api/v1/auth/login", "", body)
		require.NotEqual(t, http.StatusTooManyRequests, rec.Code)
	}

	rec := app.do(t, http.MethodPost, "/api/v1/auth/login", "", body)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
}
