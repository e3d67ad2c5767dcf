package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, duration out of range).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnauthenticated is returned when no valid session exists for a request.
// Handlers should map this to HTTP 401; browser clients redirect to sign-in.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrForbidden is returned when a valid session lacks the status required by
// an endpoint (a "user" profile on an admin route).
// Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")
