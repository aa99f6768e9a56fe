package errors

import "errors"

// ErrStoreUnavailable marks infrastructure failures on the validation
// path. Callers map it to a retryable response; business outcomes never
// carry it.
var ErrStoreUnavailable = errors.New("backing store is unavailable")
