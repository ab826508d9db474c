package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource (trip, participant, destination, setting) does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. empty participant list, unknown theme value).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUpstream is returned when the external recommendation service fails or
// returns a non-success response. The wrapped message is human-readable and
// safe to surface. Handlers should map this to HTTP 502.
// The call is single best-effort: the core never retries.
var ErrUpstream = errors.New("upstream error")
