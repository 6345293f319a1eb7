package repository

import (
	"context"
	"sync"
	"time"

	"github.com/mergington/activities/internal/domain/roster"
	"github.com/mergington/activities/internal/domain/types"
	"github.com/mergington/activities/pkg/metrics"
)

// record holds one activity's static fields plus its live roster.
type record struct {
	info   types.Activity
	roster *roster.Roster
}

// MemoryRegistry is an in-memory Registry guarded by a single RWMutex.
// Mutations are serialized, so a signup either fully lands or is fully
// rejected, and reads taken afterwards observe it.
type MemoryRegistry struct {
	mu         sync.RWMutex
	activities map[string]*record

	seed []types.Activity
}

// NewMemoryRegistry constructs a registry with configuration options.
func NewMemoryRegistry(ctx context.Context, opts ...Option) *MemoryRegistry {
	r := &MemoryRegistry{
		activities: make(map[string]*record),
	}

	// Apply all options
	for _, opt := range opts {
		opt(r)
	}

	for _, a := range r.seed {
		if a.Name == "" {
			continue
		}
		r.activities[a.Name] = &record{
			info:   types.Activity{Name: a.Name, Description: a.Description, Schedule: a.Schedule, MaxParticipants: a.MaxParticipants},
			roster: roster.New(a.Participants...),
		}
	}
	r.seed = nil

	return r
}

// List implements Registry.List. Every returned Activity carries its own
// roster copy with a non-nil participants slice.
func (r *MemoryRegistry) List(ctx context.Context) map[string]types.Activity {
	start := time.Now()
	defer func() {
		metrics.RecordRegistryListLatency(float64(time.Since(start).Nanoseconds()) / 1e6)
	}()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]types.Activity, len(r.activities))
	for name, rec := range r.activities {
		a := rec.info
		a.Participants = rec.roster.Members()
		out[name] = a
	}
	return out
}

// Signup implements Registry.Signup.
func (r *MemoryRegistry) Signup(ctx context.Context, activity, email string) error {
	start := time.Now()
	defer func() {
		metrics.RecordRegistryMutationLatency(float64(time.Since(start).Nanoseconds()) / 1e6)
	}()

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.activities[activity]
	if !ok {
		return ErrNotFound
	}
	if !rec.roster.Add(email) {
		return ErrAlreadyRegistered
	}
	return nil
}

// Unregister implements Registry.Unregister.
func (r *MemoryRegistry) Unregister(ctx context.Context, activity, email string) error {
	start := time.Now()
	defer func() {
		metrics.RecordRegistryMutationLatency(float64(time.Since(start).Nanoseconds()) / 1e6)
	}()

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.activities[activity]
	if !ok {
		return ErrNotFound
	}
	if !rec.roster.Remove(email) {
		return ErrNotRegistered
	}
	return nil
}

// Count returns the number of activities in the registry.
func (r *MemoryRegistry) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.activities)
}

// ParticipantTotal returns the number of roster entries across all activities.
func (r *MemoryRegistry) ParticipantTotal(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, rec := range r.activities {
		total += rec.roster.Len()
	}
	return total
}
