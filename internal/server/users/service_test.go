package users

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/localboost/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo is an in-memory Repository.
type memRepo struct {
	mu    sync.Mutex
	users map[string]*User

	GetErr    error
	CreateErr error
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[string]*User{}}
}

func (r *memRepo) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return nil, r.CreateErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, ErrEmailTaken
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return user, nil
}

func (r *memRepo) find(match func(*User) bool) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepo) GetByID(ctx context.Context, id string) (*User, error) {
	return r.find(func(u *User) bool { return u.ID == id })
}

func (r *memRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.find(func(u *User) bool { return u.Email == email })
}

func (r *memRepo) GetByGoogleIDOrEmail(ctx context.Context, googleID, email string) (*User, error) {
	if u, err := r.find(func(u *User) bool { return u.GoogleID != nil && *u.GoogleID == googleID }); !errors.Is(err, ErrNotFound) {
		return u, err
	}
	return r.find(func(u *User) bool { return u.Email == email })
}

func (r *memRepo) LinkGoogleID(ctx context.Context, userID, googleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.GoogleID = &googleID
	return nil
}

// fakeGoogle accepts exactly one ID token.
type fakeGoogle struct {
	token    string
	identity *auth.GoogleIdentity
}

func (g *fakeGoogle) Verify(ctx context.Context, idToken string) (*auth.GoogleIdentity, error) {
	if idToken != g.token {
		return nil, auth.ErrInvalidToken
	}
	return g.identity, nil
}

func newService(t *testing.T, google auth.GoogleVerifier) (*Service, *memRepo, *auth.TokenIssuer) {
	t.Helper()
	repo := newMemRepo()
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	return NewService(repo, tokens, google), repo, tokens
}

func registration() Registration {
	return Registration{Name: "Asha", Email: "Asha@Example.com", Phone: "5551234567", Password: "hunter2hunter2"}
}

func TestRegister_ThenCurrentUser(t *testing.T) {
	svc, _, _ := newService(t, nil)
	ctx := context.Background()

	tok, err := svc.Register(ctx, registration())
	require.NoError(t, err)

	u, err := svc.CurrentUser(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", u.Email)
	assert.Equal(t, "Asha", *u.Name)
	assert.Equal(t, "5551234567", *u.Phone)
	require.NotNil(t, u.PasswordHash)
	assert.NotEqual(t, "hunter2hunter2", *u.PasswordHash)
	assert.False(t, u.CreatedAt.IsZero())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newService(t, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, registration())
	require.NoError(t, err)

	reg := registration()
	reg.Email = " asha@example.COM "
	_, err = svc.Register(ctx, reg)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_RepoError(t *testing.T) {
	svc, repo, _ := newService(t, nil)
	repo.GetErr = errors.New("db down")

	_, err := svc.Register(context.Background(), registration())
	require.EqualError(t, err, "db down")
}

func TestLogin(t *testing.T) {
	svc, _, tokens := newService(t, nil)
	ctx := context.Background()
	_, err := svc.Register(ctx, registration())
	require.NoError(t, err)

	tok, err := svc.Login(ctx, "asha@example.com", "hunter2hunter2")
	require.NoError(t, err)
	id, err := tokens.GetUserIDFromToken(tok)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = svc.Login(ctx, "asha@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "hunter2hunter2")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_GoogleOnlyAccountHasNoPassword(t *testing.T) {
	g := &fakeGoogle{token: "gid", identity: &auth.GoogleIdentity{Subject: "g-1", Email: "g@example.com", Name: "G"}}
	svc, _, _ := newService(t, g)
	ctx := context.Background()

	_, err := svc.LoginWithGoogle(ctx, "gid")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "g@example.com", "anything-at-all")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWithGoogle_NotConfigured(t *testing.T) {
	svc, _, _ := newService(t, nil)

	_, err := svc.LoginWithGoogle(context.Background(), "gid")
	require.ErrorIs(t, err, ErrGoogleRejected)
	require.ErrorIs(t, err, auth.ErrGoogleNotConfigured)
}

func TestLoginWithGoogle_BadToken(t *testing.T) {
	g := &fakeGoogle{token: "gid", identity: &auth.GoogleIdentity{Subject: "g-1", Email: "g@example.com"}}
	svc, _, _ := newService(t, g)

	_, err := svc.LoginWithGoogle(context.Background(), "forged")
	require.ErrorIs(t, err, ErrGoogleRejected)
}

func TestLoginWithGoogle_CreatesThenReusesAccount(t *testing.T) {
	g := &fakeGoogle{token: "gid", identity: &auth.GoogleIdentity{Subject: "g-1", Email: "new@example.com", Name: "New"}}
	svc, repo, _ := newService(t, g)
	ctx := context.Background()

	tok1, err := svc.LoginWithGoogle(ctx, "gid")
	require.NoError(t, err)
	tok2, err := svc.LoginWithGoogle(ctx, "gid")
	require.NoError(t, err)

	u1, err := svc.CurrentUser(ctx, tok1)
	require.NoError(t, err)
	u2, err := svc.CurrentUser(ctx, tok2)
	require.NoError(t, err)

	assert.Equal(t, u1.ID, u2.ID)
	assert.Len(t, repo.users, 1)
	assert.Nil(t, u1.PasswordHash)
	assert.Equal(t, "g-1", *u1.GoogleID)
	assert.Equal(t, "New", *u1.Name)
}

func TestLoginWithGoogle_LinksExistingEmail(t *testing.T) {
	g := &fakeGoogle{token: "gid", identity: &auth.GoogleIdentity{Subject: "g-1", Email: "asha@example.com"}}
	svc, _, _ := newService(t, g)
	ctx := context.Background()

	regTok, err := svc.Register(ctx, registration())
	require.NoError(t, err)
	registered, err := svc.CurrentUser(ctx, regTok)
	require.NoError(t, err)

	tok, err := svc.LoginWithGoogle(ctx, "gid")
	require.NoError(t, err)

	u, err := svc.CurrentUser(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
	require.NotNil(t, u.GoogleID)
	assert.Equal(t, "g-1", *u.GoogleID)
}

func TestCurrentUser_Rejections(t *testing.T) {
	svc, _, tokens := newService(t, nil)
	ctx := context.Background()

	_, err := svc.CurrentUser(ctx, "garbage")
	require.ErrorIs(t, err, ErrUnauthorized)

	orphan, err := tokens.GenerateToken("deleted-user")
	require.NoError(t, err)
	_, err = svc.CurrentUser(ctx, orphan)
	require.ErrorIs(t, err, ErrUnauthorized)

	expired, err := auth.NewTokenIssuer("test-secret", -time.Minute).GenerateToken("u")
	require.NoError(t, err)
	_, err = svc.CurrentUser(ctx, expired)
	require.ErrorIs(t, err, ErrUnauthorized)
	require.ErrorIs(t, err, auth.ErrTokenExpired)
}
