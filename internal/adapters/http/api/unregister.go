// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mergington/activities/internal/adapters/repository"
)

// UnregisterDependencies defines the interface for unregister operations.
type UnregisterDependencies interface {
	Unregister(ctx context.Context, activity, email string) error
}

// UnregisterHandler handles unregister requests.
type UnregisterHandler struct {
	deps UnregisterDependencies
}

// NewUnregisterHandler creates a new unregister handler.
func NewUnregisterHandler(deps UnregisterDependencies) *UnregisterHandler {
	return &UnregisterHandler{deps: deps}
}

// HandleUnregister handles DELETE /activities/{activity}/unregister?email= requests.
func (h *UnregisterHandler) HandleUnregister(w http.ResponseWriter, r *http.Request) {
	name := activityParam(r)
	email := r.URL.Query().Get("email")
	if strings.TrimSpace(email) == "" {
		writeDetail(w, http.StatusBadRequest, ErrMissingEmail.Error())
		return
	}
	if err := h.deps.Unregister(r.Context(), name, email); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeDetail(w, http.StatusNotFound, "Activity not found")
		case errors.Is(err, repository.ErrNotRegistered):
			writeDetail(w, http.StatusBadRequest, fmt.Sprintf("%s is not registered for %s", email, name))
		default:
			writeDetail(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("%s unregistered from %s", email, name)})
}
