// Package repository defines the activity registry interface and errors.
package repository

import (
	"context"

	"github.com/mergington/activities/internal/domain/types"
)

// Registry provides read/write access to the activity roster state.
type Registry interface {
	// List returns a snapshot of every activity keyed by name. The snapshot
	// is deep-copied, so callers may mutate it freely.
	List(ctx context.Context) map[string]types.Activity

	// Signup adds email to the roster of the named activity.
	// Returns ErrNotFound if the activity is unknown and
	// ErrAlreadyRegistered if email is already on the roster.
	Signup(ctx context.Context, activity, email string) error

	// Unregister removes email from the roster of the named activity.
	// Returns ErrNotFound if the activity is unknown and
	// ErrNotRegistered if email is not on the roster.
	Unregister(ctx context.Context, activity, email string) error

	// Count returns the number of activities tracked in the registry.
	Count(ctx context.Context) int

	// ParticipantTotal returns the number of roster entries across all activities.
	ParticipantTotal(ctx context.Context) int
}
