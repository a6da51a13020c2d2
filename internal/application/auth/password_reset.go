package auth

import (
	"context"
	"strings"

	"github.com/bookverse/bookverse-api/internal/domain"
)

// PasswordResetRequest issues a reset action token and dispatches the reset
// email. IMPORTANT: non-enumerating; the caller always gets a success-shaped
// response whether or not the email is registered.
func (s *Service) PasswordResetRequest(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return domain.ErrMissingField("email")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil
	}

	token, err := s.codec.IssueAction(u.Email, domain.PurposePasswordReset, s.passwordResetTTL)
	if err != nil {
		return err
	}

	evt := PasswordResetEvent{
		UserID: u.ID,
		Email:  u.Email,
		URL:    s.domain + "/api/v1/auth/password-reset-confirm/" + token,
	}
	dispatch(ctx, "password_reset", func(ctx context.Context) error {
		return s.pub.PublishPasswordReset(ctx, evt)
	})

	return nil
}

// PasswordResetConfirm consumes the reset token and overwrites the user's
// password hash. The two submitted passwords must match.
func (s *Service) PasswordResetConfirm(ctx context.Context, token, newPassword, confirmPassword string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ErrMissingField("token")
	}
	if newPassword == "" {
		return domain.ErrMissingField("new_password")
	}
	if newPassword != confirmPassword {
		return domain.ErrPasswordMismatch()
	}

	claims, err := s.checkActionToken(ctx, token, domain.PurposePasswordReset)
	if err != nil {
		return err
	}

	u, err := s.users.GetByEmail(ctx, claims.Email)
	if err != nil {
		return domain.ErrUserNotFound()
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePasswordHash(ctx, u.ID, hash); err != nil {
		return err
	}
	return s.burnActionToken(ctx, claims)
}
