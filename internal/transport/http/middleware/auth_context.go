package middleware

import (
	"context"

	"github.com/bookverse/bookverse-api/internal/application/auth"
	"github.com/bookverse/bookverse-api/internal/domain"
)

type ctxKey int

const (
	claimsKey ctxKey = iota
	userKey
)

// WithClaims stores verified session claims on the context.
func WithClaims(ctx context.Context, claims auth.SessionClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFrom returns the session claims set by RequireToken.
func ClaimsFrom(ctx context.Context) (auth.SessionClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(auth.SessionClaims)
	return claims, ok
}

// WithUser stores the resolved user record on the context.
func WithUser(ctx context.Context, u domain.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFrom returns the user set by RequireRoles.
func UserFrom(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(userKey).(domain.User)
	return u, ok
}
