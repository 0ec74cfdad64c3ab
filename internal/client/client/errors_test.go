package client

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPError_Classification(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrAuthentication},
		{http.StatusForbidden, ErrAuthentication},
		{http.StatusBadRequest, ErrValidation},
		{http.StatusConflict, ErrValidation},
		{http.StatusUnprocessableEntity, ErrValidation},
		{http.StatusInternalServerError, ErrNetwork},
		{http.StatusServiceUnavailable, ErrNetwork},
		{http.StatusTooManyRequests, ErrNetwork},
		{http.StatusNotFound, ErrNetwork},
		{http.StatusMethodNotAllowed, ErrNetwork},
	}
	for _, tt := range tests {
		err := fmt.Errorf("op: %w", &HTTPError{StatusCode: tt.status})
		require.ErrorIs(t, err, tt.want, "status %d", tt.status)
	}

	notFound := &HTTPError{StatusCode: http.StatusNotFound, Message: "Not Found"}
	require.False(t, errors.Is(notFound, ErrAuthentication))
	require.False(t, errors.Is(notFound, ErrValidation))
	require.Equal(t, "HTTP 404: Not Found", notFound.Error())
	require.Equal(t, "HTTP 500", (&HTTPError{StatusCode: 500}).Error())
}

func TestIsStatusAndDetail(t *testing.T) {
	err := fmt.Errorf("wrap: %w", &HTTPError{StatusCode: 409, Message: "Email already registered"})

	require.True(t, IsStatus(err, 409))
	require.False(t, IsStatus(err, 401))
	require.False(t, IsStatus(errors.New("plain"), 409))
	require.Equal(t, "Email already registered", Detail(err))
	require.Empty(t, Detail(errors.New("plain")))
}

func TestParseDetail(t *testing.T) {
	require.Equal(t, "Invalid email or password", parseDetail([]byte(`{"detail":"Invalid email or password"}`)))
	require.Equal(t, "email: value is not a valid email address", parseDetail([]byte(`{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address"}]}`)))
	require.Equal(t, "bad", parseDetail([]byte(`{"detail":[{"loc":[],"msg":"bad"}]}`)))
	require.Equal(t, "nope", parseDetail([]byte(`{"error":"nope"}`)))
	require.Equal(t, "Internal Server Error", parseDetail([]byte("Internal Server Error\n")))
}
