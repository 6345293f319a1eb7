// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/mergington/activities/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// ListActivities exposes a snapshot of the registry keyed by activity name.
	ListActivities(ctx context.Context) map[string]Activity

	// Signup and Unregister mutate a single activity roster.
	Signup(ctx context.Context, activity, email string) error
	Unregister(ctx context.Context, activity, email string) error
}

// Activity mirrors the read shape returned by registry queries.
type Activity = types.Activity

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	activitiesHandler *ActivitiesHandler
	signupHandler     *SignupHandler
	unregisterHandler *UnregisterHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		activitiesHandler: NewActivitiesHandler(deps),
		signupHandler:     NewSignupHandler(deps),
		unregisterHandler: NewUnregisterHandler(deps),
	}
}

// Register attaches all HTTP routes to the router.
func (s *Server) Register(ctx context.Context, r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	r.Get("/activities", MetricsMiddleware(s.activitiesHandler.HandleListActivities, "activities"))
	r.Post("/activities/{activity}/signup", MetricsMiddleware(s.signupHandler.HandleSignup, "signup"))
	r.Delete("/activities/{activity}/unregister", MetricsMiddleware(s.unregisterHandler.HandleUnregister, "unregister"))
}

// activityParam extracts the activity name from the request path. Names may
// arrive percent-encoded ("Soccer%20Team"), so the captured segment is
// unescaped before lookup; on a malformed escape the raw segment is used.
func activityParam(r *http.Request) string {
	name := chi.URLParam(r, "activity")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	return name
}

// messageResponse is the success envelope for mutation endpoints.
type messageResponse struct {
	Message string `json:"message"`
}

// detailResponse is the error envelope; the signup page surfaces the
// detail field to students verbatim.
type detailResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, detailResponse{Detail: msg})
}
