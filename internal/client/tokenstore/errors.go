package tokenstore

import "errors"

// ErrStorage wraps every failure of the underlying secure storage.
var ErrStorage = errors.New("token storage failure")
