package client

import (
	"context"

	"github.com/dmitrijs2005/localboost/internal/client/models"
)

// Client is the remote auth API used by the session manager.
type Client interface {
	Register(ctx context.Context, reg models.Registration) (*models.TokenResponse, error)
	Login(ctx context.Context, creds models.Credentials) (*models.TokenResponse, error)
	LoginWithGoogle(ctx context.Context, idToken string) (*models.TokenResponse, error)
	// FetchCurrentUser authenticates with the most recently stored token.
	FetchCurrentUser(ctx context.Context) (*models.User, error)
}

// TokenSource yields the bearer to attach to outgoing requests. ok is false
// when nothing is stored.
type TokenSource interface {
	Get(ctx context.Context) (token string, ok bool, err error)
}
