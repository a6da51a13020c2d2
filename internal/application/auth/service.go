package auth

import (
	"context"
	"time"

	"github.com/bookverse/bookverse-api/internal/domain"
	"github.com/bookverse/bookverse-api/internal/logger"
)

type Service struct {
	users   UserRepo
	hasher  PasswordHasher
	codec   TokenCodec
	revoked RevocationStore
	pub     MailPublisher

	accessTTL  time.Duration
	refreshTTL time.Duration

	// Base host for links embedded in emails, e.g. http://localhost:8080
	domain           string
	verifyEmailTTL   time.Duration
	passwordResetTTL time.Duration
}

type Config struct {
	AccessTTL             time.Duration
	RefreshTTL            time.Duration
	Domain                string
	VerifyEmailTokenTTL   time.Duration
	PasswordResetTokenTTL time.Duration
}

func NewService(
	users UserRepo,
	hasher PasswordHasher,
	codec TokenCodec,
	revoked RevocationStore,
	pub MailPublisher,
	cfg Config,
) *Service {
	verifyTTL := cfg.VerifyEmailTokenTTL
	if verifyTTL <= 0 {
		verifyTTL = 24 * time.Hour
	}
	resetTTL := cfg.PasswordResetTokenTTL
	if resetTTL <= 0 {
		resetTTL = 30 * time.Minute
	}
	return &Service{
		users:   users,
		hasher:  hasher,
		codec:   codec,
		revoked: revoked,
		pub:     pub,

		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,

		domain:           cfg.Domain,
		verifyEmailTTL:   verifyTTL,
		passwordResetTTL: resetTTL,
	}
}

// AuthTokens is the common token output for handlers/DTO mapping.
type AuthTokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64  // seconds, access token
	TokenType    string // "Bearer"
}

type LoginResult struct {
	User   domain.User
	Tokens AuthTokens
}

// issueTokens issues an access token + refresh token for a user,
// with independent TTLs.
func (s *Service) issueTokens(userID, email, role string) (AuthTokens, error) {
	access, err := s.codec.IssueSession(userID, email, role, domain.TokenAccess, s.accessTTL)
	if err != nil {
		return AuthTokens{}, err
	}

	// The refresh token carries no role; Refresh re-reads the user and
	// mints the next access token from current state.
	refresh, err := s.codec.IssueSession(userID, email, "", domain.TokenRefresh, s.refreshTTL)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

// dispatch runs fn in the background so a slow broker never blocks or
// fails the HTTP response. The request context is detached on purpose.
func dispatch(ctx context.Context, what string, fn func(ctx context.Context) error) {
	bg := context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(bg, 10*time.Second)
		defer cancel()
		if err := fn(ctx); err != nil {
			logger.WithCtx(ctx).Error().Err(err).Str("event", what).Msg("mail dispatch failed")
		}
	}()
}

// checkActionToken decodes an action token and enforces its purpose and
// single-use semantics. The jti is burned separately via burnActionToken
// once the guarded mutation succeeds, so a failed attempt does not waste
// the token.
func (s *Service) checkActionToken(ctx context.Context, token string, purpose domain.ActionPurpose) (ActionClaims, error) {
	claims, err := s.codec.DecodeAction(token)
	if err != nil {
		return ActionClaims{}, err
	}
	if claims.Purpose != purpose {
		return ActionClaims{}, domain.ErrTokenInvalid()
	}

	used, err := s.revoked.IsRevoked(ctx, claims.JTI)
	if err != nil {
		return ActionClaims{}, err
	}
	if used {
		return ActionClaims{}, domain.ErrTokenInvalid()
	}
	return claims, nil
}

// burnActionToken records the jti for the token's remaining life.
func (s *Service) burnActionToken(ctx context.Context, claims ActionClaims) error {
	if ttl := time.Until(claims.Exp); ttl > 0 {
		return s.revoked.Revoke(ctx, claims.JTI, ttl)
	}
	return nil
}

func (s *Service) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return s.users.GetByID(ctx, id)
}
