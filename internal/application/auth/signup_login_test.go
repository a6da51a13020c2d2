package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bookverse/bookverse-api/internal/domain"
)

func TestSignup_EmptyEmailOrPassword_InvalidField(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _, _ := newSvcForTest(t)

	_, err := svc.Signup(context.Background(), SignupCmd{Username: "bob"})
	requireErrCode(t, err, "invalid_field")
}

func TestSignup_DuplicateEmail_Conflict(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _, _ := newSvcForTest(t)
	seedUser(users, "u1", "a@b.com", "pw", "user")

	_, err := svc.Signup(context.Background(), SignupCmd{
		Username: "bob",
		Email:    "A@B.com", // matched case-insensitively
		Password: "pw",
	})
	requireErrCode(t, err, "email_already_exists")
}

func TestSignup_HashFail_Propagates(t *testing.T) {
	t.Parallel()

	svc, _, hasher, _, _, _ := newSvcForTest(t)
	hasher.hashFn = func(pw string) (string, error) {
		return "", domain.ErrHashFailed(errors.New("boom"))
	}

	_, err := svc.Signup(context.Background(), SignupCmd{
		Username: "bob",
		Email:    "a@b.com",
		Password: "pw",
	})
	requireErrCode(t, err, "hash_failed")
}

func TestSignup_Success_CreatesUnverifiedUser(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _, pub := newSvcForTest(t)

	u, err := svc.Signup(context.Background(), SignupCmd{
		Username:  "bob",
		Email:     "Bob@Example.com",
		Password:  "secretpw",
		FirstName: "Bob",
		LastName:  "Builder",
	})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	if u.ID == "" {
		t.Fatalf("expected generated user id")
	}
	if u.Email != "bob@example.com" {
		t.Fatalf("expected lowercased email, got %q", u.Email)
	}
	if u.Role != string(domain.RoleUser) {
		t.Fatalf("expected role user, got %q", u.Role)
	}
	if u.IsVerified {
		t.Fatalf("new accounts must start unverified")
	}
	if _, ok := users.byID[u.ID]; !ok {
		t.Fatalf("expected user persisted")
	}

	evt := waitVerifyEvent(t, pub)
	if evt.Email != "bob@example.com" {
		t.Fatalf("unexpected event email %q", evt.Email)
	}
	if !strings.Contains(evt.URL, "/api/v1/auth/verify/") {
		t.Fatalf("expected verify link in %q", evt.URL)
	}
}

func TestLogin_EmptyFields_InvalidCredentials(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _, _ := newSvcForTest(t)

	_, err := svc.Login(context.Background(), "", "")
	requireErrCode(t, err, "invalid_credentials")
}

func TestLogin_UnknownEmail_InvalidCredentials(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _, _ := newSvcForTest(t)

	_, err := svc.Login(context.Background(), "missing@x.com", "pw")
	requireErrCode(t, err, "invalid_credentials")
}

func TestLogin_BadPassword_InvalidCredentials(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _, _ := newSvcForTest(t)
	seedUser(users, "u1", "a@b.com", "right", "user")

	_, err := svc.Login(context.Background(), "a@b.com", "wrong")
	requireErrCode(t, err, "invalid_credentials")
}

func TestLogin_Success_IssuesAccessAndRefresh(t *testing.T) {
	t.Parallel()

	svc, users, _, codec, _, _ := newSvcForTest(t)
	seedUser(users, "u1", "a@b.com", "pw", "user")

	res, err := svc.Login(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	if res.Tokens.AccessToken == "" || res.Tokens.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", res.Tokens)
	}
	if res.Tokens.TokenType != "Bearer" {
		t.Fatalf("expected Bearer, got %q", res.Tokens.TokenType)
	}
	if res.Tokens.ExpiresIn != int64((15 * 60)) {
		t.Fatalf("expected access expiry 900s, got %d", res.Tokens.ExpiresIn)
	}

	ac, err := codec.DecodeSession(res.Tokens.AccessToken)
	if err != nil || ac.Kind != domain.TokenAccess {
		t.Fatalf("expected access kind, got %+v err=%v", ac, err)
	}
	rc, err := codec.DecodeSession(res.Tokens.RefreshToken)
	if err != nil || rc.Kind != domain.TokenRefresh {
		t.Fatalf("expected refresh kind, got %+v err=%v", rc, err)
	}
	if ac.JTI == rc.JTI {
		t.Fatalf("access and refresh must carry distinct jtis")
	}
}

func TestLogin_UnverifiedUser_StillAllowed(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _, _ := newSvcForTest(t)
	u := seedUser(users, "u1", "a@b.com", "pw", "user")
	u.IsVerified = false
	users.put(u)

	res, err := svc.Login(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("unverified users may log in; got %v", err)
	}
	if res.User.IsVerified {
		t.Fatalf("expected unverified user in result")
	}
}
