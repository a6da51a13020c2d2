package auth

import (
	"context"
	"time"

	"github.com/bookverse/bookverse-api/internal/domain"
)

// Logout revokes the presented access token by recording its jti until the
// token would have expired on its own. The refresh token issued alongside
// is unaffected.
func (s *Service) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return domain.ErrTokenMissing()
	}

	claims, err := s.codec.DecodeSession(accessToken)
	if err != nil {
		return err
	}
	if claims.Kind != domain.TokenAccess {
		return domain.ErrWrongTokenKind(domain.TokenAccess)
	}

	ttl := time.Until(claims.Exp)
	if ttl <= 0 {
		// Already expired; nothing left to deny.
		return nil
	}
	return s.revoked.Revoke(ctx, claims.JTI, ttl)
}
