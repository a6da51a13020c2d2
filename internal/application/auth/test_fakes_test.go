package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bookverse/bookverse-api/internal/domain"
)

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	byID    map[string]domain.User
	byEmail map[string]domain.User

	// injected errors (if set, method returns error)
	getByEmailErr error
	createErr     error

	updatedPwd []struct{ id, hash string }
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[string]domain.User{},
		byEmail: map[string]domain.User{},
	}
}

func (f *fakeUserRepo) put(u domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.PasswordHash = newHash
	f.byID[userID] = u
	f.byEmail[u.Email] = u
	f.updatedPwd = append(f.updatedPwd, struct{ id, hash string }{userID, newHash})
	return nil
}

func (f *fakeUserRepo) SetVerified(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.IsVerified = true
	f.byID[userID] = u
	f.byEmail[u.Email] = u
	return nil
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (f *fakeHasher) Hash(pw string) (string, error) {
	if f.hashFn != nil {
		return f.hashFn(pw)
	}
	return "hash:" + pw, nil
}

func (f *fakeHasher) Compare(hash, pw string) error {
	if f.compareFn != nil {
		return f.compareFn(hash, pw)
	}
	if hash != "hash:"+pw {
		return errors.New("mismatch")
	}
	return nil
}

// fakeCodec hands out opaque tokens backed by in-memory claim maps, so
// tests never depend on real JWT plumbing.
type fakeCodec struct {
	mu sync.Mutex
	n  int

	sessions map[string]SessionClaims
	actions  map[string]ActionClaims

	issueErr error
}

func newFakeCodec() *fakeCodec {
	return &fakeCodec{
		sessions: map[string]SessionClaims{},
		actions:  map[string]ActionClaims{},
	}
}

func (f *fakeCodec) IssueSession(userID, email, role string, kind domain.TokenKind, ttl time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.issueErr != nil {
		return "", f.issueErr
	}
	f.n++
	tok := fmt.Sprintf("sess-%d", f.n)
	f.sessions[tok] = SessionClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		Kind:   kind,
		JTI:    fmt.Sprintf("jti-%d", f.n),
		Exp:    time.Now().Add(ttl),
	}
	return tok, nil
}

func (f *fakeCodec) DecodeSession(token string) (SessionClaims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.sessions[token]
	if !ok {
		return SessionClaims{}, domain.ErrTokenInvalid()
	}
	if time.Now().After(c.Exp) {
		return SessionClaims{}, domain.ErrTokenExpired()
	}
	return c, nil
}

func (f *fakeCodec) IssueAction(email string, purpose domain.ActionPurpose, ttl time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.issueErr != nil {
		return "", f.issueErr
	}
	f.n++
	tok := fmt.Sprintf("act-%d", f.n)
	f.actions[tok] = ActionClaims{
		Email:   email,
		Purpose: purpose,
		JTI:     fmt.Sprintf("jti-%d", f.n),
		Exp:     time.Now().Add(ttl),
	}
	return tok, nil
}

func (f *fakeCodec) DecodeAction(token string) (ActionClaims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.actions[token]
	if !ok {
		return ActionClaims{}, domain.ErrTokenInvalid()
	}
	if time.Now().After(c.Exp) {
		return ActionClaims{}, domain.ErrTokenExpired()
	}
	return c, nil
}

type fakeRevocations struct {
	mu      sync.Mutex
	entries map[string]time.Time

	revokeErr error
}

func newFakeRevocations() *fakeRevocations {
	return &fakeRevocations{entries: map[string]time.Time{}}
}

func (f *fakeRevocations) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.revokeErr != nil {
		return f.revokeErr
	}
	f.entries[jti] = time.Now().Add(ttl)
	return nil
}

func (f *fakeRevocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	exp, ok := f.entries[jti]
	return ok && time.Now().Before(exp), nil
}

// fakePublisher pushes events onto buffered channels so tests can wait
// for the async dispatch goroutine.
type fakePublisher struct {
	verify chan VerifyEmailEvent
	reset  chan PasswordResetEvent
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{
		verify: make(chan VerifyEmailEvent, 4),
		reset:  make(chan PasswordResetEvent, 4),
	}
}

func (f *fakePublisher) PublishVerifyEmail(ctx context.Context, evt VerifyEmailEvent) error {
	f.verify <- evt
	return nil
}

func (f *fakePublisher) PublishPasswordReset(ctx context.Context, evt PasswordResetEvent) error {
	f.reset <- evt
	return nil
}

func waitVerifyEvent(t *testing.T, pub *fakePublisher) VerifyEmailEvent {
	t.Helper()
	select {
	case evt := <-pub.verify:
		return evt
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for verify email event")
		return VerifyEmailEvent{}
	}
}

func waitResetEvent(t *testing.T, pub *fakePublisher) PasswordResetEvent {
	t.Helper()
	select {
	case evt := <-pub.reset:
		return evt
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for password reset event")
		return PasswordResetEvent{}
	}
}

func newSvcForTest(t *testing.T) (*Service, *fakeUserRepo, *fakeHasher, *fakeCodec, *fakeRevocations, *fakePublisher) {
	t.Helper()

	users := newFakeUserRepo()
	hasher := &fakeHasher{}
	codec := newFakeCodec()
	revoked := newFakeRevocations()
	pub := newFakePublisher()

	svc := NewService(users, hasher, codec, revoked, pub, Config{
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 48 * time.Hour,
		Domain:     "http://localhost:8080",
	})
	return svc, users, hasher, codec, revoked, pub
}

// seedUser registers a verified user directly in the fake repo. The
// password matches via fakeHasher's "hash:" scheme.
func seedUser(users *fakeUserRepo, id, email, password, role string) domain.User {
	u := domain.User{
		ID:           id,
		Username:     strings.SplitN(email, "@", 2)[0],
		Email:        email,
		PasswordHash: "hash:" + password,
		Role:         role,
		IsVerified:   true,
	}
	users.put(u)
	return u
}
