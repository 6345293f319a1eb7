// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"

	repository "github.com/mergington/activities/internal/adapters/repository"
	"github.com/mergington/activities/internal/domain/seed"
	"github.com/mergington/activities/internal/domain/types"
	"github.com/mergington/activities/pkg/logger"
	"github.com/mergington/activities/pkg/metrics"
)

// Service implements the API dependencies for the activity signup system.
type Service struct {
	mu sync.RWMutex

	// Core components
	registry repository.Registry

	// Configuration
	catalog  []types.Activity
	seedFile string

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCatalog sets the activity catalog the registry starts from. Without
// it, the service falls back to the built-in school defaults. The catalog is
// copied, so later caller mutations never reach the registry.
func WithCatalog(catalog []types.Activity) Option {
	return func(s *Service) {
		if catalog != nil {
			owned := make([]types.Activity, len(catalog))
			for i, a := range catalog {
				owned[i] = a.Clone()
			}
			s.catalog = owned
		}
	}
}

// WithSeedFile points the service at a YAML catalog loaded during Start.
// It takes precedence over WithCatalog.
func WithSeedFile(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.seedFile = path
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		logger: nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting activity service...")

	// Resolve the starting catalog: seed file wins, then the configured
	// catalog, then the built-in school defaults.
	catalog := s.catalog
	if s.seedFile != "" {
		loaded, err := seed.FromFile(ctx, s.seedFile)
		if err != nil {
			return err
		}
		catalog = loaded
		s.logger.Info(ctx, "loaded activity catalog from file",
			logger.String("path", s.seedFile),
			logger.Int("activities", len(loaded)),
		)
	}
	if catalog == nil {
		catalog = seed.Activities()
	}

	s.registry = repository.NewMemoryRegistry(ctx, repository.WithSeed(catalog))

	s.started = true
	s.logger.Info(ctx, "activity service started",
		logger.Int("activities", s.registry.Count(ctx)),
		logger.Int("participants", s.registry.ParticipantTotal(ctx)),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping activity service...")

	s.started = false
	s.logger.Info(context.Background(), "activity service stopped")
}

// ListActivities returns a snapshot of all activities keyed by name.
func (s *Service) ListActivities(ctx context.Context) map[string]types.Activity {
	return s.registry.List(ctx)
}

// Signup registers email for the named activity.
func (s *Service) Signup(ctx context.Context, activity, email string) error {
	if err := s.registry.Signup(ctx, activity, email); err != nil {
		metrics.RecordRejection("signup", rejectionReason(err))
		s.logger.Debug(ctx, "signup rejected",
			logger.String("activity", activity),
			logger.String("email", email),
			logger.Error(err),
		)
		return err
	}

	metrics.RecordSignup()
	s.logger.Info(ctx, "participant signed up",
		logger.String("activity", activity),
		logger.String("email", email),
	)
	return nil
}

// Unregister removes email from the named activity.
func (s *Service) Unregister(ctx context.Context, activity, email string) error {
	if err := s.registry.Unregister(ctx, activity, email); err != nil {
		metrics.RecordRejection("unregister", rejectionReason(err))
		s.logger.Debug(ctx, "unregister rejected",
			logger.String("activity", activity),
			logger.String("email", email),
			logger.Error(err),
		)
		return err
	}

	metrics.RecordUnregister()
	s.logger.Info(ctx, "participant unregistered",
		logger.String("activity", activity),
		logger.String("email", email),
	)
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started": s.started,
	}

	if s.started {
		activityCount := s.registry.Count(ctx)
		participantTotal := s.registry.ParticipantTotal(ctx)

		stats["activities"] = activityCount
		stats["participants"] = participantTotal

		// Update metrics
		metrics.UpdateActivityCount(activityCount)
		metrics.UpdateParticipantTotal(participantTotal)
	}

	return stats
}

// rejectionReason maps registry sentinels onto metric label values.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	case errors.Is(err, repository.ErrAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, repository.ErrNotRegistered):
		return "not_registered"
	default:
		return "unknown"
	}
}
