package auth

import (
	"context"
	"strings"

	"github.com/bookverse/bookverse-api/internal/domain"
)

// VerifyEmail consumes a verification action token and flips the user's
// verified flag. The token proves control of the embedded email address.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ErrMissingField("token")
	}

	claims, err := s.checkActionToken(ctx, token, domain.PurposeVerifyEmail)
	if err != nil {
		return err
	}

	u, err := s.users.GetByEmail(ctx, claims.Email)
	if err != nil {
		return domain.ErrUserNotFound()
	}

	if err := s.users.SetVerified(ctx, u.ID); err != nil {
		return err
	}
	return s.burnActionToken(ctx, claims)
}
