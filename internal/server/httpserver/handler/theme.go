// Package handler provides HTTP request handlers for SnipBoard.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/yndnr/snipboard/internal/core/domain"
)

// handleGetTheme handles GET /api/v1/theme.
func (h *Handler) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, ThemeResponse{Preference: h.ctrl.Theme(r.Context())})
}

// handleSetTheme handles PUT /api/v1/theme.
func (h *Handler) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceError(w, r, domain.ErrBadRequest.WithDetails("invalid request body"))
		return
	}

	pref, err := domain.ParseThemePreference(req.Preference)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if err := h.ctrl.SetTheme(r.Context(), pref); err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, ThemeResponse{Preference: pref})
}
