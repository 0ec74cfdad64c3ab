package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/localboost/internal/client/models"
	"github.com/dmitrijs2005/localboost/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokens is a TokenSource whose value can change between requests.
type fakeTokens struct {
	mu    sync.Mutex
	token string
	err   error
	calls int
}

func (f *fakeTokens) Get(ctx context.Context) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", false, f.err
	}
	return f.token, f.token != "", nil
}

func (f *fakeTokens) set(tok string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = tok
}

func newTestClient(t *testing.T, h http.HandlerFunc, tokens TokenSource) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/", 2*time.Second, tokens, logging.Discard())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func TestLogin_PostsCredentialsAndReturnsToken(t *testing.T) {
	var got models.Credentials
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NotEmpty(t, r.Header.Get(requestIDHeader))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, map[string]string{"access_token": "T1", "token_type": "bearer"})
	}, &fakeTokens{})

	tr, err := c.Login(context.Background(), models.Credentials{Email: "a@x.io", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "T1", tr.AccessToken)
	assert.Equal(t, "bearer", tr.TokenType)
	assert.Equal(t, models.Credentials{Email: "a@x.io", Password: "hunter22"}, got)
}

func TestLogin_Unauthorized_IsAuthenticationError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid email or password"})
	}, nil)

	_, err := c.Login(context.Background(), models.Credentials{Email: "a@x.io", Password: "nope"})
	require.ErrorIs(t, err, ErrAuthentication)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.Equal(t, "Invalid email or password", Detail(err))
	assert.Contains(t, err.Error(), "client.Login")
}

func TestLogin_EmptyTokenRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"token_type": "bearer"})
	}, nil)

	_, err := c.Login(context.Background(), models.Credentials{})
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestRegister_DefaultsTokenType(t *testing.T) {
	var got models.Registration
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/register", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, map[string]string{"access_token": "R1"})
	}, nil)

	reg := models.Registration{Name: "Asha", Email: "a@x.io", Phone: "5551234567", Password: "longenough"}
	tr, err := c.Register(context.Background(), reg)
	require.NoError(t, err)
	assert.Equal(t, "R1", tr.AccessToken)
	assert.Equal(t, models.TokenTypeBearer, tr.TokenType)
	assert.Equal(t, reg, got)
}

func TestRegister_Conflict_IsValidationError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]string{"detail": "Email already registered"})
	}, nil)

	_, err := c.Register(context.Background(), models.Registration{Email: "dup@x.io"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Email already registered", Detail(err))
}

func TestRegister_UnprocessableEntity_FlattensDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{
				{"loc": []any{"body", "phone"}, "msg": "Phone must be exactly 10 digits"},
				{"loc": []any{"body", "password"}, "msg": "too short"},
			},
		})
	}, nil)

	_, err := c.Register(context.Background(), models.Registration{})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "phone: Phone must be exactly 10 digits; password: too short", Detail(err))
}

func TestServerError_IsNetworkError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}, nil)

	_, err := c.Login(context.Background(), models.Credentials{})
	require.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, "upstream down", Detail(err))
}

func TestUnreachable_IsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, time.Second, nil, logging.Discard())
	_, err := c.FetchCurrentUser(context.Background())
	require.ErrorIs(t, err, ErrNetwork)
}

func TestTimeout_IsNetworkError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := NewHTTPClient(srv.URL, 50*time.Millisecond, nil, logging.Discard())
	_, err := c.Login(context.Background(), models.Credentials{})
	require.ErrorIs(t, err, ErrNetwork)
}

func TestCanceledContext_IsNotNetworkError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"access_token": "x"})
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Login(ctx, models.Credentials{})
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, ErrNetwork)
}

func TestFetchCurrentUser_UsesLatestStoredToken(t *testing.T) {
	tokens := &fakeTokens{token: "A"}
	var seen []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/me", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)
		seen = append(seen, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{
			"id": "u1", "name": "Asha", "email": "a@x.io", "phone": nil, "created_at": "2026-01-02T03:04:05",
		})
	}, tokens)

	u, err := c.FetchCurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "Asha", *u.Name)
	assert.Nil(t, u.Phone)

	tokens.set("B")
	_, err = c.FetchCurrentUser(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer A", "Bearer B"}, seen)
}

func TestRequests_WithoutTokenOmitAuthorization(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]string{"access_token": "x"})
	}, &fakeTokens{})

	_, err := c.Login(context.Background(), models.Credentials{})
	require.NoError(t, err)
}

func TestTokenSourceError_SendsWithoutBearer(t *testing.T) {
	tokens := &fakeTokens{err: errors.New("keychain locked")}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
	}, tokens)

	_, err := c.FetchCurrentUser(context.Background())
	require.ErrorIs(t, err, ErrAuthentication)
	assert.Equal(t, 1, tokens.calls)
}

func TestLoginWithGoogle_SendsIDToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/google-oauth", r.URL.Path)
		var body models.GoogleOAuthRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "gid-123", body.IDToken)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid Google token (or GOOGLE_CLIENT_ID not configured)"})
	}, nil)

	_, err := c.LoginWithGoogle(context.Background(), "gid-123")
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestUndecodableSuccess_IsNetworkError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>captive portal</html>"))
	}, nil)

	_, err := c.FetchCurrentUser(context.Background())
	require.ErrorIs(t, err, ErrNetwork)
}

func TestUnmappedStatus_IsNetworkError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not Found"})
	}, nil)

	_, err := c.Login(context.Background(), models.Credentials{})
	require.ErrorIs(t, err, ErrNetwork)
	assert.True(t, IsStatus(err, http.StatusNotFound))
}

func TestWithBearer_OverridesTokenSource(t *testing.T) {
	tokens := &fakeTokens{token: "stored"}
	var seen string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, map[string]any{"id": "u1", "email": "a@x.io", "created_at": "2026-01-02T03:04:05"})
	}, tokens)

	_, err := c.FetchCurrentUser(WithBearer(context.Background(), "candidate"))
	require.NoError(t, err)

	assert.Equal(t, "Bearer candidate", seen)
	assert.Equal(t, 0, tokens.calls)
}

func TestBearerFromContext(t *testing.T) {
	_, ok := BearerFromContext(context.Background())
	assert.False(t, ok)

	tok, ok := BearerFromContext(WithBearer(context.Background(), "T"))
	assert.True(t, ok)
	assert.Equal(t, "T", tok)
}
