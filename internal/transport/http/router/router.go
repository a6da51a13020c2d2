package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/bookverse/bookverse-api/internal/config"
	"github.com/bookverse/bookverse-api/internal/domain"
	"github.com/bookverse/bookverse-api/internal/transport/http/handlers"
	"github.com/bookverse/bookverse-api/internal/transport/http/middleware"
)

type Deps struct {
	Auth    *handlers.AuthHandler
	Books   *handlers.BookHandler
	Reviews *handlers.ReviewHandler
	Tags    *handlers.TagHandler

	Guard *middleware.Guard
	Cfg   *config.Config
}

func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.SecurityHeaders)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.AccessLog)

	r.Get("/healthz", handlers.Health)

	requireAccess := deps.Guard.RequireToken(domain.TokenAccess)
	anyRole := deps.Guard.RequireRoles(domain.RoleUser, domain.RoleAdmin)
	adminOnly := deps.Guard.RequireRoles(domain.RoleAdmin)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// Brute-force protection on the credential endpoints.
			if deps.Cfg != nil && deps.Cfg.RLEnabled {
				r.Use(httprate.LimitByIP(deps.Cfg.RLLimit, deps.Cfg.RLWindow))
			}

			r.Post("/signup", deps.Auth.Signup)
			r.Post("/login", deps.Auth.Login)
			r.Get("/refresh_token", deps.Auth.Refresh)
			r.Get("/logout", deps.Auth.Logout)
			r.With(requireAccess, anyRole).Get("/me", deps.Auth.Me)

			r.Get("/verify/{token}", deps.Auth.VerifyEmail)
			r.Post("/password-reset", deps.Auth.PasswordResetRequest)
			r.Post("/password-reset-confirm/{token}", deps.Auth.PasswordResetConfirm)
		})

		r.Route("/books", func(r chi.Router) {
			r.Use(requireAccess, anyRole)

			r.Get("/", deps.Books.List)
			r.Post("/", deps.Books.Create)
			r.Get("/{book_id}", deps.Books.Get)
			r.Patch("/{book_id}", deps.Books.Update)
			r.Delete("/{book_id}", deps.Books.Delete)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.With(requireAccess, adminOnly).Get("/", deps.Reviews.List)

			r.Group(func(r chi.Router) {
				r.Use(requireAccess, anyRole)
				r.Post("/book/{book_uid}", deps.Reviews.AddToBook)
				r.Get("/{review_uid}", deps.Reviews.Get)
				r.Delete("/{review_uid}", deps.Reviews.Delete)
			})
		})

		r.Route("/tags", func(r chi.Router) {
			r.Use(requireAccess, anyRole)

			r.Get("/", deps.Tags.List)
			r.Post("/", deps.Tags.Create)
			r.Post("/book/{book_uid}/tags", deps.Tags.AttachToBook)
			r.Put("/{tag_uid}", deps.Tags.Update)
			r.Delete("/{tag_uid}", deps.Tags.Delete)
		})
	})

	return r
}
