package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/localboost/internal/client/models"
	"github.com/dmitrijs2005/localboost/internal/logging"
)

const (
	pathRegister    = "/api/v1/auth/register"
	pathLogin       = "/api/v1/auth/login"
	pathGoogleOAuth = "/api/v1/auth/google-oauth"
	pathMe          = "/api/v1/auth/me"

	maxErrorBody = 1 << 20
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient builds a client for baseURL. tokens is consulted on every
// request for the bearer credential.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &bearerTransport{
				base:   http.DefaultTransport,
				tokens: tokens,
				log:    log,
			},
		},
	}
}

func (c *HTTPClient) Register(ctx context.Context, reg models.Registration) (*models.TokenResponse, error) {
	var tr models.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, pathRegister, reg, &tr); err != nil {
		return nil, fmt.Errorf("client.Register: %w", err)
	}
	return checkToken(&tr, "client.Register")
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.TokenResponse, error) {
	var tr models.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, pathLogin, creds, &tr); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return checkToken(&tr, "client.Login")
}

// LoginWithGoogle exchanges a Google ID token. Backends without Google
// configured answer 401, which surfaces as ErrAuthentication.
func (c *HTTPClient) LoginWithGoogle(ctx context.Context, idToken string) (*models.TokenResponse, error) {
	var tr models.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, pathGoogleOAuth, models.GoogleOAuthRequest{IDToken: idToken}, &tr); err != nil {
		return nil, fmt.Errorf("client.LoginWithGoogle: %w", err)
	}
	return checkToken(&tr, "client.LoginWithGoogle")
}

func (c *HTTPClient) FetchCurrentUser(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.doRequest(ctx, http.MethodGet, pathMe, nil, &u); err != nil {
		return nil, fmt.Errorf("client.FetchCurrentUser: %w", err)
	}
	return &u, nil
}

func checkToken(tr *models.TokenResponse, op string) (*models.TokenResponse, error) {
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("%s: empty access token: %w", op, ErrAuthentication)
	}
	if tr.TokenType == "" {
		tr.TokenType = models.TokenTypeBearer
	}
	return tr, nil
}

func (c *HTTPClient) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return mapTransportError(err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: parseDetail(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w: %w", ErrNetwork, err)
		}
	}
	return nil
}

// mapTransportError folds every failure that happened before a response was
// received into ErrNetwork, keeping the cause in the chain.
func mapTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("do request: %w", err)
	}
	return fmt.Errorf("do request: %w: %w", ErrNetwork, err)
}

// parseDetail extracts a readable message from a FastAPI error body:
// {"detail": "text"} or {"detail": [{"loc": [...], "msg": "..."}]}.
func parseDetail(body []byte) string {
	var apiErr struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.Unmarshal(body, &apiErr); err != nil {
		return strings.TrimSpace(string(body))
	}

	if len(apiErr.Detail) > 0 {
		var text string
		if json.Unmarshal(apiErr.Detail, &text) == nil {
			return text
		}

		var items []struct {
			Loc []any  `json:"loc"`
			Msg string `json:"msg"`
		}
		if json.Unmarshal(apiErr.Detail, &items) == nil && len(items) > 0 {
			msgs := make([]string, 0, len(items))
			for _, it := range items {
				if field := lastLoc(it.Loc); field != "" {
					msgs = append(msgs, field+": "+it.Msg)
				} else {
					msgs = append(msgs, it.Msg)
				}
			}
			return strings.Join(msgs, "; ")
		}
	}

	if apiErr.Error != "" {
		return apiErr.Error
	}
	return strings.TrimSpace(string(body))
}

func lastLoc(loc []any) string {
	if len(loc) == 0 {
		return ""
	}
	if s, ok := loc[len(loc)-1].(string); ok {
		return s
	}
	return ""
}
