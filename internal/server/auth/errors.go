package auth

import "errors"

var (
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrGoogleNotConfigured = errors.New("google sign-in is not configured")
)
