package config

import (
	"errors"
)

// Sentinel kinds for configuration errors. These allow errors.Is from callers.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
