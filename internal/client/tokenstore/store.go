package tokenstore

import "context"

// Store persists at most one opaque session token.
type Store interface {
	// Get returns ok=false when nothing is stored.
	Get(ctx context.Context) (token string, ok bool, err error)
	// Set replaces any existing token.
	Set(ctx context.Context, token string) error
	// Delete succeeds when nothing is stored.
	Delete(ctx context.Context) error
}
