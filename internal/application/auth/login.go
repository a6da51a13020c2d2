package auth

import (
	"context"
	"strings"

	"github.com/bookverse/bookverse-api/internal/domain"
)

// Login authenticates a user and issues an access + refresh token pair.
// IMPORTANT: must not leak whether the email exists (avoid user enumeration);
// unknown email and wrong password fail identically.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" || password == "" {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Hide not-found behind invalid credentials
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	// Verification is not a login precondition; unverified users can log in
	// but are stopped at role-gated routes.
	toks, err := s.issueTokens(u.ID, u.Email, u.Role)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{User: u, Tokens: toks}, nil
}
