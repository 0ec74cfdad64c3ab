package auth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

const googleIssuer = "https://accounts.google.com"

// GoogleIdentity is what the server keeps from a verified Google ID token.
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
}

// GoogleVerifier checks a Google ID token.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleIdentity, error)
}

// OIDCGoogleVerifier validates ID tokens against Google's published keys.
type OIDCGoogleVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewGoogleVerifier discovers Google's OIDC configuration. It returns
// ErrGoogleNotConfigured when clientID is empty.
func NewGoogleVerifier(ctx context.Context, clientID string) (*OIDCGoogleVerifier, error) {
	if clientID == "" {
		return nil, ErrGoogleNotConfigured
	}

	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("google oidc discovery: %w", err)
	}

	return newOIDCGoogleVerifier(provider.Verifier(&oidc.Config{ClientID: clientID})), nil
}

func newOIDCGoogleVerifier(v *oidc.IDTokenVerifier) *OIDCGoogleVerifier {
	return &OIDCGoogleVerifier{verifier: v}
}

func (v *OIDCGoogleVerifier) Verify(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	token, err := v.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	var claims struct {
		Subject string `json:"sub"`
		Email   string `json:"email"`
		Name    string `json:"name"`
	}
	if err := token.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, fmt.Errorf("%w: missing sub or email", ErrInvalidToken)
	}

	return &GoogleIdentity{Subject: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}
