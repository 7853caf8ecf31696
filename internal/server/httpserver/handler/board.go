// Package handler provides HTTP request handlers for SnipBoard.
package handler

import (
	"bytes"
	"net/http"

	"github.com/yndnr/snipboard/internal/server/web"
)

// handleBoard handles GET /. It renders the tab bar and the active
// document's snippets; the page script drives everything else through the
// JSON API.
func (h *Handler) handleBoard(w http.ResponseWriter, r *http.Request) {
	snap := h.ctrl.Snapshot()
	view := web.BoardView{
		Documents: snap.Documents,
		ActiveID:  snap.ActiveID,
		Theme:     h.ctrl.Theme(r.Context()),
		Accept:    h.ctrl.AllowedExtensions(),
	}

	var buf bytes.Buffer
	if err := h.board.Execute(&buf, view); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
