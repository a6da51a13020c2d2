package auth

import (
	"context"
	"time"

	"github.com/bookverse/bookverse-api/internal/domain"
)

/*
UserRepo
--------
Persistence port for user records. Only describes WHAT the auth service
needs, not HOW it is stored.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)

	// Updates needed by business flows
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error
	SetVerified(ctx context.Context, userID string) error
}

/*
PasswordHasher
--------------
Abstracts bcrypt / argon2.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenCodec
----------
Issues and verifies the two token flavors:
- session tokens (access/refresh) carrying identity + role + jti
- single-use action tokens carrying email + purpose

Used by the service and by the transport guard.
*/
type SessionClaims struct {
	UserID string
	Email  string
	Role   string
	Kind   domain.TokenKind
	JTI    string
	Exp    time.Time
}

type ActionClaims struct {
	Email   string
	Purpose domain.ActionPurpose
	JTI     string
	Exp     time.Time
}

type TokenCodec interface {
	IssueSession(userID, email, role string, kind domain.TokenKind, ttl time.Duration) (string, error)
	DecodeSession(token string) (SessionClaims, error)

	IssueAction(email string, purpose domain.ActionPurpose, ttl time.Duration) (string, error)
	DecodeAction(token string) (ActionClaims, error)
}

/*
RevocationStore
---------------
Denylist of token identifiers (jti). Entries carry a TTL so they evict
once the original token would have expired anyway. Backed by Redis.
*/
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

/*
MailPublisher
-------------
Publishes email events to the broker. A separate mail worker consumes
these and does the actual SMTP delivery; this service never sends mail
directly.
*/
type MailPublisher interface {
	PublishVerifyEmail(ctx context.Context, evt VerifyEmailEvent) error
	PublishPasswordReset(ctx context.Context, evt PasswordResetEvent) error
}

type VerifyEmailEvent struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	URL    string `json:"url"`
}

type PasswordResetEvent struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	URL    string `json:"url"`
}
