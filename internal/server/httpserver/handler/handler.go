// Package handler provides HTTP request handlers for SnipBoard.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/yndnr/snipboard/internal/core/domain"
	"github.com/yndnr/snipboard/internal/core/service"
	"github.com/yndnr/snipboard/internal/server/web"
	"github.com/yndnr/snipboard/internal/telemetry/logger"
)

// DefaultMaxUploadBytes bounds uploads when Config.MaxUploadBytes is zero.
const DefaultMaxUploadBytes int64 = 1 << 20

// Config wires the handler to the application.
type Config struct {
	Controller *service.TabController
	Logger     *slog.Logger

	// MaxUploadBytes limits the request body of uploads.
	MaxUploadBytes int64

	// Ready reports whether storage is usable. Nil means always ready.
	Ready func(context.Context) error
}

// Handler is the main HTTP handler that routes requests to appropriate handlers.
type Handler struct {
	ctrl      *service.TabController
	logger    *slog.Logger
	maxUpload int64
	ready     func(context.Context) error
	board     *template.Template
	mux       *http.ServeMux
}

// New creates a new Handler. It fails only if the embedded board
// template does not parse.
func New(cfg Config) (*Handler, error) {
	tmpl, err := web.BoardTemplate()
	if err != nil {
		return nil, err
	}

	h := &Handler{
		ctrl:      cfg.Controller,
		logger:    cfg.Logger,
		maxUpload: cfg.MaxUploadBytes,
		ready:     cfg.Ready,
		board:     tmpl,
		mux:       http.NewServeMux(),
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.maxUpload <= 0 {
		h.maxUpload = DefaultMaxUploadBytes
	}

	h.registerRoutes()
	return h, nil
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// Mux exposes the route table so the router can add infrastructure
// routes (metrics, static assets) that share its pattern matching.
func (h *Handler) Mux() *http.ServeMux {
	return h.mux
}

// registerRoutes registers all HTTP routes.
func (h *Handler) registerRoutes() {
	// Health endpoints
	h.mux.HandleFunc("GET /health", h.handleHealth)
	h.mux.HandleFunc("GET /ready", h.handleReady)
	h.mux.HandleFunc("GET /api/v1/version", h.handleVersion)

	// Board page
	h.mux.HandleFunc("GET /{$}", h.handleBoard)

	// Documents (tabs)
	h.mux.HandleFunc("GET /api/v1/documents", h.handleListDocuments)
	h.mux.HandleFunc("POST /api/v1/documents", h.handleUploadDocument)
	h.mux.HandleFunc("POST /api/v1/documents/reorder", h.handleReorderDocuments)
	h.mux.HandleFunc("GET /api/v1/documents/{id}", h.handleGetDocument)
	h.mux.HandleFunc("DELETE /api/v1/documents/{id}", h.handleCloseDocument)
	h.mux.HandleFunc("POST /api/v1/documents/{id}/activate", h.handleActivateDocument)
	h.mux.HandleFunc("GET /api/v1/documents/{id}/snippets/{index}", h.handleGetSnippet)

	// Theme
	h.mux.HandleFunc("GET /api/v1/theme", h.handleGetTheme)
	h.mux.HandleFunc("PUT /api/v1/theme", h.handleSetTheme)

	// Export
	h.mux.HandleFunc("GET /api/v1/export", h.handleExport)
}

// writeJSON writes a JSON response with standard envelope format.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	response := NewResponse(logger.RequestIDFromContext(r.Context()), data)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes an error response with standard envelope format.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	response := NewErrorResponse(logger.RequestIDFromContext(r.Context()), code, message, details)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// handleServiceError converts service errors to HTTP responses.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.DomainError
	if errors.As(err, &de) {
		status := de.Status()
		if status >= http.StatusInternalServerError {
			h.logger.Error("request failed",
				"request_id", logger.RequestIDFromContext(r.Context()),
				"code", de.Code,
				"error", err,
			)
		}
		var details any
		if de.Details != "" {
			details = de.Details
		}
		h.writeError(w, r, status, de.Code, de.Message, details)
		return
	}

	h.logger.Error("internal error",
		"request_id", logger.RequestIDFromContext(r.Context()),
		"error", err,
	)
	h.writeError(w, r, http.StatusInternalServerError, domain.ErrInternalServer.Code, "internal server error", nil)
}
