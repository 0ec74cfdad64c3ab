package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/localboost/internal/logging"
	"github.com/dmitrijs2005/localboost/internal/server/users"
	"github.com/dmitrijs2005/localboost/internal/timex"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

// Accounts is the part of users.Service the handlers call.
type Accounts interface {
	Register(ctx context.Context, reg users.Registration) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	LoginWithGoogle(ctx context.Context, idToken string) (string, error)
	CurrentUser(ctx context.Context, token string) (*users.User, error)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userResponse struct {
	ID        string          `json:"id"`
	Name      *string         `json:"name"`
	Email     string          `json:"email"`
	Phone     *string         `json:"phone"`
	CreatedAt timex.Timestamp `json:"created_at"`
}

type Handlers struct {
	appName  string
	accounts Accounts
	validate *validator.Validate
	log      logging.Logger
}

func NewHandlers(appName string, accounts Accounts, log logging.Logger) *Handlers {
	return &Handlers{appName: appName, accounts: accounts, validate: newValidator(), log: log}
}

func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"app": h.appName, "status": "running"})
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decode(w, r, &req) {
		return
	}

	token, err := h.accounts.Register(r.Context(), users.Registration{
		Name: req.Name, Email: req.Email, Phone: req.Phone, Password: req.Password,
	})
	h.respondToken(w, r, token, err)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}

	token, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	h.respondToken(w, r, token, err)
}

func (h *Handlers) GoogleOAuth(w http.ResponseWriter, r *http.Request) {
	var req googleRequest
	if !h.decode(w, r, &req) {
		return
	}

	token, err := h.accounts.LoginWithGoogle(r.Context(), req.IDToken)
	h.respondToken(w, r, token, err)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.accounts.CurrentUser(r.Context(), token)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		CreatedAt: timex.Timestamp{Time: user.CreatedAt},
	})
}

// decode reads and validates a JSON body. On failure it has already
// written the 422 response.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeValidation(w, []fieldError{{Loc: []string{"body"}, Msg: "JSON decode error", Type: "json_invalid"}})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeValidation(w, validationErrors(err))
		return false
	}
	return true
}

func (h *Handlers) respondToken(w http.ResponseWriter, r *http.Request, token string, err error) {
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *Handlers) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, users.ErrEmailTaken):
		writeDetail(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, users.ErrInvalidCredentials):
		writeDetail(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, users.ErrGoogleRejected):
		h.log.Info(r.Context(), "google sign-in rejected", "error", err)
		writeDetail(w, http.StatusUnauthorized, "Invalid Google token (or GOOGLE_CLIENT_ID not configured)")
	case errors.Is(err, users.ErrUnauthorized):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
	default:
		h.log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
