// Package site serves the embedded student signup page.
package site

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Register attaches the signup page routes to the router.
func Register(_ context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}

	root := NewRootHandler()
	r.Get("/", root.HandleRoot)

	// Serve the embedded page assets under /static/
	files := http.StripPrefix("/static/", http.FileServer(FS()))
	r.Handle("/static/*", files)
}

// RootHandler handles root path requests.
type RootHandler struct{}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// HandleRoot handles GET / requests by sending students to the signup page.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
}
