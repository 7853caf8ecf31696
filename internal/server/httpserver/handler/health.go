// Package handler provides HTTP request handlers for SnipBoard.
package handler

import (
	"net/http"
	"time"

	"github.com/yndnr/snipboard/internal/core/domain"
	"github.com/yndnr/snipboard/internal/infra/buildinfo"
)

// handleHealth handles GET /health.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleReady handles GET /ready. The last save outcome is reported but
// does not fail readiness; only the storage probe does.
func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready(r.Context()); err != nil {
			h.handleServiceError(w, r, domain.ErrNotReady.WithCause(err).WithDetails(err.Error()))
			return
		}
	}

	body := map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.ctrl.LastSaveError(); err != nil {
		body["last_save_error"] = err.Error()
	}
	h.writeJSON(w, r, http.StatusOK, body)
}

// handleVersion handles GET /api/v1/version.
func (h *Handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, buildinfo.Get())
}
