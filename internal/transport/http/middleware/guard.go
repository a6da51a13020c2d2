package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/bookverse/bookverse-api/internal/application/auth"
	"github.com/bookverse/bookverse-api/internal/domain"
	"github.com/bookverse/bookverse-api/internal/transport/http/response"
)

// UserReader resolves the acting user for role checks.
type UserReader interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
}

// Guard authenticates requests from bearer tokens.
// RequireToken verifies the token itself; RequireRoles layers account
// checks (verified, role) on top.
type Guard struct {
	codec   auth.TokenCodec
	revoked auth.RevocationStore
	users   UserReader
}

func NewGuard(codec auth.TokenCodec, revoked auth.RevocationStore, users UserReader) *Guard {
	return &Guard{codec: codec, revoked: revoked, users: users}
}

// BearerToken extracts the token from an "Authorization: Bearer <t>" header.
func BearerToken(r *http.Request) (string, error) {
	raw := r.Header.Get("Authorization")
	if raw == "" {
		return "", domain.ErrTokenMissing()
	}

	parts := strings.SplitN(raw, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", domain.ErrTokenMissing()
	}
	return parts[1], nil
}

// RequireToken rejects requests without a valid, unrevoked session token
// of the given kind, and stores its claims on the context.
func (g *Guard) RequireToken(kind domain.TokenKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := BearerToken(r)
			if err != nil {
				response.WriteError(w, r, err)
				return
			}

			claims, err := g.codec.DecodeSession(token)
			if err != nil {
				response.WriteError(w, r, err)
				return
			}

			if claims.Kind != kind {
				response.WriteError(w, r, domain.ErrWrongTokenKind(kind))
				return
			}

			revoked, err := g.revoked.IsRevoked(r.Context(), claims.JTI)
			if err != nil {
				response.WriteError(w, r, err)
				return
			}
			if revoked {
				response.WriteError(w, r, domain.ErrTokenRevoked())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireRoles resolves the authenticated user and rejects unverified
// accounts (401) and roles outside the allowed set (403). Must run after
// RequireToken.
func (g *Guard) RequireRoles(allowed ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFrom(r.Context())
			if !ok {
				response.WriteError(w, r, domain.ErrTokenMissing())
				return
			}

			u, err := g.users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				// A token for a user that no longer exists is treated
				// like any other bad token.
				if domain.Is(err, "user_not_found") {
					response.WriteError(w, r, domain.ErrTokenInvalid())
					return
				}
				response.WriteError(w, r, err)
				return
			}

			if !u.IsVerified {
				response.WriteError(w, r, domain.ErrEmailNotVerified())
				return
			}

			if !domain.RoleAllowed(u.Role, allowed) {
				response.WriteError(w, r, domain.ErrInsufficientRole())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}
