// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// ActivityDependencies defines the interface for listing activities.
type ActivityDependencies interface {
	ListActivities(ctx context.Context) map[string]Activity
}

// ActivitiesHandler handles activity listing requests.
type ActivitiesHandler struct {
	deps ActivityDependencies
}

// NewActivitiesHandler creates a new activities handler.
func NewActivitiesHandler(deps ActivityDependencies) *ActivitiesHandler {
	return &ActivitiesHandler{deps: deps}
}

// HandleListActivities handles GET /activities requests. The response is a
// JSON object keyed by activity name; the name is not repeated inside each
// value, and participant lists are always present even when empty.
func (h *ActivitiesHandler) HandleListActivities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.ListActivities(r.Context()))
}
