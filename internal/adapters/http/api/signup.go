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

// SignupDependencies defines the interface for signup operations.
type SignupDependencies interface {
	Signup(ctx context.Context, activity, email string) error
}

// SignupHandler handles signup requests.
type SignupHandler struct {
	deps SignupDependencies
}

// NewSignupHandler creates a new signup handler.
func NewSignupHandler(deps SignupDependencies) *SignupHandler {
	return &SignupHandler{deps: deps}
}

// HandleSignup handles POST /activities/{activity}/signup?email= requests.
func (h *SignupHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	name := activityParam(r)
	email := r.URL.Query().Get("email")
	if strings.TrimSpace(email) == "" {
		writeDetail(w, http.StatusBadRequest, ErrMissingEmail.Error())
		return
	}
	if err := h.deps.Signup(r.Context(), name, email); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeDetail(w, http.StatusNotFound, "Activity not found")
		case errors.Is(err, repository.ErrAlreadyRegistered):
			writeDetail(w, http.StatusBadRequest, fmt.Sprintf("%s is already registered for %s", email, name))
		default:
			writeDetail(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("%s signed up for %s", email, name)})
}
