package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/bookverse/bookverse-api/internal/domain"
)

type SignupCmd struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Signup creates an unverified user account and dispatches a verification
// email in the background. Duplicate emails are a conflict.
func (s *Service) Signup(ctx context.Context, cmd SignupCmd) (domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" || cmd.Password == "" {
		return domain.User{}, domain.ErrInvalidField("email/password", "empty")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}

	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(cmd.Username),
		Email:        email,
		FirstName:    strings.TrimSpace(cmd.FirstName),
		LastName:     strings.TrimSpace(cmd.LastName),
		PasswordHash: hash,
		Role:         string(domain.RoleUser),
		IsVerified:   false,
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return domain.User{}, err
	}

	token, err := s.codec.IssueAction(created.Email, domain.PurposeVerifyEmail, s.verifyEmailTTL)
	if err != nil {
		return domain.User{}, err
	}

	evt := VerifyEmailEvent{
		UserID: created.ID,
		Email:  created.Email,
		URL:    s.domain + "/api/v1/auth/verify/" + token,
	}
	dispatch(ctx, "verify_email", func(ctx context.Context) error {
		return s.pub.PublishVerifyEmail(ctx, evt)
	})

	return created, nil
}
