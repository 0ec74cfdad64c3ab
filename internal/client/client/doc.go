// Package client talks to the LocalBoost auth API.
//
// # Overview
//
// Client is the transport-agnostic contract used by the session manager:
// Register, Login, LoginWithGoogle and FetchCurrentUser. HTTPClient implements
// it over JSON/HTTP. Its RoundTripper reads the current token from a
// TokenSource on every request and sends it as "Authorization: Bearer".
//
// # Error Handling
//
// Failures are classified into three sentinels, matched with errors.Is:
//
//   - ErrNetwork: transport failure, timeout, 5xx
//   - ErrAuthentication: 401/403, or a token response without a token
//   - ErrValidation: 400/409/422
//
// When the server answered, the error is an *HTTPError carrying the status
// code and the "detail" text; use Detail to show it to the user.
package client
