// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Fields map to flat koanf keys; env vars use the MHS_ prefix.
// - New() builds a Config with defaults; Load(ctx) layers file and env on top.
// - External errors must be wrapped via this package's sentinel kinds.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// SeedFile optionally points at a YAML activity catalog that replaces
	// the built-in one at startup. Empty means the built-in catalog.
	SeedFile string `koanf:"seed_file"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel: "info",
		Addr:     ":8000",
		SeedFile: "",
	}
}
