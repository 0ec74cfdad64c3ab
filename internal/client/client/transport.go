package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/localboost/internal/logging"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

type bearerKey struct{}

// WithBearer returns a context whose requests authenticate with token
// instead of whatever the TokenSource holds.
func WithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerKey{}, token)
}

// BearerFromContext reports the token set by WithBearer, if any.
func BearerFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(bearerKey{}).(string)
	return token, ok
}

// bearerTransport looks the token up on every request, so a token written by
// the session manager is picked up by the very next call.
type bearerTransport struct {
	base   http.RoundTripper
	tokens TokenSource
	log    logging.Logger
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	// RoundTrippers must not mutate the caller's request.
	req = req.Clone(ctx)

	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	if token, ok := BearerFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	} else if t.tokens != nil {
		token, ok, err := t.tokens.Get(ctx)
		switch {
		case err != nil:
			// an unreadable store is the same as no token
			t.log.Warn(ctx, "token lookup failed, sending request without bearer", "request_id", requestID, "error", err)
		case ok:
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	t.log.Debug(ctx, "http request", "method", req.Method, "path", req.URL.Path, "request_id", requestID)

	return t.base.RoundTrip(req)
}
