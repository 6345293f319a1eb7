package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrMissingEmail = errors.New("email is required")
)
