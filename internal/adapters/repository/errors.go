package repository

import "errors"

// Sentinel kinds for registry errors.
var (
	ErrNotFound          = errors.New("activity not found")
	ErrAlreadyRegistered = errors.New("participant already registered")
	ErrNotRegistered     = errors.New("participant not registered")
)
