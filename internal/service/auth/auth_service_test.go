package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Korolev2000/flightbooking/internal/domain"
	"github.com/Korolev2000/flightbooking/internal/repository"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return domain.ErrUsernameTaken
	}
	r.users[user.Username] = user
	return nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, domain.User{Username: u.Username, Admin: u.Admin})
	}
	return out, nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

type fakeBlacklist struct {
	mu     sync.Mutex
	tokens map[string]struct{}
}

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{tokens: map[string]struct{}{}}
}

func (b *fakeBlacklist) Revoke(_ context.Context, token string, _ time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[token] = struct{}{}
	return nil
}

func (b *fakeBlacklist) IsRevoked(_ context.Context, token string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.tokens[token]
	return ok, nil
}

func newTestService(ttl time.Duration) (*AuthService, *fakeUserRepo, *fakeBlacklist) {
	users := newFakeUserRepo()
	blacklist := newFakeBlacklist()
	svc := NewAuthService(users, blacklist, "test-secret", ttl, zerolog.Nop())
	return svc, users, blacklist
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, users, _ := newTestService(30 * time.Minute)
	ctx := context.Background()

	session, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", session.User.Username)
	assert.False(t, session.User.Admin)
	assert.NotEmpty(t, session.Token)

	// The stored record must hold a hash, never the plaintext.
	stored, err := users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", stored.PasswordHash)
	assert.NotContains(t, stored.PasswordHash, "s3cret")

	login, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", login.User.Username)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc, _, _ := newTestService(30 * time.Minute)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "one"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Username: "alice", Password: "two"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc, _, _ := newTestService(30 * time.Minute)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Register(ctx, RegisterInput{Username: "bob", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuthService_Register_AdminFlag(t *testing.T) {
	svc, _, _ := newTestService(30 * time.Minute)
	ctx := context.Background()

	session, err := svc.Register(ctx, RegisterInput{Username: "root", Password: "pw", Admin: true})
	require.NoError(t, err)
	assert.True(t, session.User.Admin)

	claims, err := svc.ParseToken(ctx, session.Token)
	require.NoError(t, err)
	assert.True(t, claims.Admin)
	assert.Equal(t, "root", claims.Username())
}

func TestAuthService_Login_UniformFailure(t *testing.T) {
	svc, _, _ := newTestService(30 * time.Minute)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "right"})
	require.NoError(t, err)

	_, errUnknown := svc.Login(ctx, "nobody", "whatever")
	_, errWrongPw := svc.Login(ctx, "alice", "wrong")

	// Unknown user and wrong password must be indistinguishable to the
	// caller.
	assert.ErrorIs(t, errUnknown, domain.ErrUnauthorized)
	assert.ErrorIs(t, errWrongPw, domain.ErrUnauthorized)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestAuthService_ParseToken_Lifecycle(t *testing.T) {
	svc, _, _ := newTestService(30 * time.Minute)
	ctx := context.Background()

	session, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	claims, err := svc.ParseToken(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username())

	// Revoke moves the token to a terminal state.
	require.NoError(t, svc.Revoke(ctx, session.Token))
	_, err = svc.ParseToken(ctx, session.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Revoking again is a no-op, not an error.
	require.NoError(t, svc.Revoke(ctx, session.Token))
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	svc, _, _ := newTestService(-time.Minute)
	ctx := context.Background()

	session, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.ParseToken(ctx, session.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ParseToken_Tampered(t *testing.T) {
	svc, _, _ := newTestService(30 * time.Minute)
	ctx := context.Background()

	session, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	tampered := session.Token[:len(session.Token)-2] + "xx"
	_, err = svc.ParseToken(ctx, tampered)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	other := NewAuthService(newFakeUserRepo(), newFakeBlacklist(), "other-secret", 30*time.Minute, zerolog.Nop())
	_, err = other.ParseToken(ctx, session.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_Revoke_ExpiredTokenIsNoop(t *testing.T) {
	expiredSvc, _, _ := newTestService(-time.Minute)
	ctx := context.Background()

	session, err := expiredSvc.Register(ctx, RegisterInput{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	blacklist := newFakeBlacklist()
	svc := NewAuthService(newFakeUserRepo(), blacklist, "test-secret", 30*time.Minute, zerolog.Nop())
	require.NoError(t, svc.Revoke(ctx, session.Token))

	revoked, err := blacklist.IsRevoked(ctx, session.Token)
	require.NoError(t, err)
	assert.False(t, revoked, "expired tokens need no blacklist entry")
}

func TestAuthService_TokenIsOpaqueButSigned(t *testing.T) {
	svc, _, _ := newTestService(30 * time.Minute)
	ctx := context.Background()

	session, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(session.Token, ".")))
}
