package cli

import (
	"errors"

	"github.com/dmitrijs2005/localboost/internal/client/client"
	"github.com/dmitrijs2005/localboost/internal/client/tokenstore"
)

// friendlyError turns an operation error into one line for the user.
// fallback is used when nothing more specific is known.
func friendlyError(err error, fallback string) string {
	var fe *formError
	if errors.As(err, &fe) {
		return fe.Error()
	}

	detail := client.Detail(err)

	switch {
	case errors.Is(err, client.ErrAuthentication):
		if detail != "" {
			return detail
		}
		return "Invalid email or password."
	case errors.Is(err, client.ErrValidation):
		if detail != "" {
			return detail
		}
		return fallback
	case errors.Is(err, client.ErrNetwork):
		return "Could not reach the server. Check your connection and try again."
	case errors.Is(err, tokenstore.ErrStorage):
		return "Could not save your session on this device."
	default:
		return fallback
	}
}
