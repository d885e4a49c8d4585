package auth_test

import (
	"context"
	"testing"
	"time"

	"microposts/internal/auth"
	"microposts/internal/dbtest"
	"microposts/internal/domain"
	"microposts/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	auth  *auth.SessionAuthenticator
	q     *store.Queries
	mr    *miniredis.Miniredis
	alice *domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	q := store.New(dbtest.Open(t))
	hasher := &auth.BcryptHasher{Cost: bcrypt.MinCost}

	hash, err := hasher.Hash("correct horse")
	require.NoError(t, err)
	alice, err := q.Users.Create(context.Background(), "alice", "alice@example.com", hash, false)
	require.NoError(t, err)

	a := auth.NewSessionAuthenticator(q.Users, hasher, auth.NewSessionStore(rdb, time.Hour), "test-secret")
	return &fixture{auth: a, q: q, mr: mr, alice: alice}
}

func TestBcryptHasher(t *testing.T) {
	h := auth.NewBcryptHasher()
	assert.Equal(t, bcrypt.DefaultCost, h.Cost)

	h.Cost = bcrypt.MinCost
	hash, err := h.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)
	assert.NoError(t, h.Compare(hash, "secret"))
	assert.Error(t, h.Compare(hash, "wrong"))

	again, err := h.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "hashes are salted")
}

func TestAuthenticateAndResolve(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tok, err := f.auth.Authenticate(ctx, auth.Credentials{Email: "alice@example.com", Password: "correct horse"})
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	user, err := f.auth.ResolveSession(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, user.ID)
	assert.Equal(t, "alice", user.Name)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Authenticate(ctx, auth.Credentials{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.auth.Authenticate(ctx, auth.Credentials{Email: "nobody@example.com", Password: "correct horse"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	assert.Empty(t, f.mr.Keys(), "no session is created on failure")
}

func TestResolveSessionSeesProfileChanges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tok, err := f.auth.Login(ctx, f.alice)
	require.NoError(t, err)

	require.NoError(t, f.q.Users.UpdateByID(ctx, f.alice.ID, store.UserFields{
		Name: "alicia", Email: "alice@example.com", PasswordHash: f.alice.Password, IsAdmin: true,
	}))

	user, err := f.auth.ResolveSession(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, "alicia", user.Name)
	assert.True(t, user.IsAdmin)
}

func TestLogoutRevokesSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tok, err := f.auth.Login(ctx, f.alice)
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(ctx, tok))
	_, err = f.auth.ResolveSession(ctx, tok)
	assert.ErrorIs(t, err, auth.ErrNoSession)

	assert.NoError(t, f.auth.Logout(ctx, "garbage"))
}

func TestResolveSessionRejectsGarbageAndExpired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.ResolveSession(ctx, "not-a-token")
	assert.ErrorIs(t, err, auth.ErrNoSession)

	tok, err := f.auth.Login(ctx, f.alice)
	require.NoError(t, err)
	f.mr.FastForward(2 * time.Hour)
	_, err = f.auth.ResolveSession(ctx, tok)
	assert.ErrorIs(t, err, auth.ErrNoSession)
}

func TestResolveSessionForDeletedUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tok, err := f.auth.Login(ctx, f.alice)
	require.NoError(t, err)

	require.NoError(t, f.q.Users.DeleteWithRelations(ctx, f.alice.ID))

	_, err = f.auth.ResolveSession(ctx, tok)
	assert.ErrorIs(t, err, auth.ErrNoSession)
	assert.Empty(t, f.mr.Keys())
}
