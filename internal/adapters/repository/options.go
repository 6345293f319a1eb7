// Package repository defines the activity registry interface and errors.
package repository

import (
	"github.com/mergington/activities/internal/domain/types"
)

// Option applies a configuration option to the MemoryRegistry.
type Option func(*MemoryRegistry)

// WithSeed loads the registry with an initial activity catalog. Entries
// with an empty name are skipped; a repeated name replaces the earlier one.
func WithSeed(activities []types.Activity) Option {
	return func(r *MemoryRegistry) {
		if activities != nil {
			r.seed = activities
		}
	}
}
