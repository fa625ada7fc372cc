package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service and engine functions when input fails
// business rule validation (e.g. non-positive drive cap, arrival before
// departure). Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrProvider is returned when an upstream place lookup fails after retries.
// Handlers should map this to HTTP 502 Bad Gateway; discovery may instead
// degrade to partial results when only some zones fail.
var ErrProvider = errors.New("provider unavailable")
