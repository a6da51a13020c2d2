package auth

import (
	"context"

	"github.com/bookverse/bookverse-api/internal/domain"
)

// Refresh mints a fresh access token from a still-valid refresh token.
// Access tokens are rejected; the refresh token itself is not rotated.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (AuthTokens, error) {
	if refreshToken == "" {
		return AuthTokens{}, domain.ErrTokenMissing()
	}

	claims, err := s.codec.DecodeSession(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}
	if claims.Kind != domain.TokenRefresh {
		return AuthTokens{}, domain.ErrWrongTokenKind(domain.TokenRefresh)
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.JTI)
	if err != nil {
		return AuthTokens{}, err
	}
	if revoked {
		return AuthTokens{}, domain.ErrTokenRevoked()
	}

	// Re-read the user so the new access token reflects current role state.
	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return AuthTokens{}, domain.ErrTokenInvalid()
	}

	access, err := s.codec.IssueSession(u.ID, u.Email, u.Role, domain.TokenAccess, s.accessTTL)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.accessTTL.Seconds()),
	}, nil
}
