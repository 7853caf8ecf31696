// Package httpserver provides the HTTP/HTTPS server for SnipBoard.
package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/yndnr/snipboard/internal/core/service"
	"github.com/yndnr/snipboard/internal/server/httpserver/handler"
	"github.com/yndnr/snipboard/internal/server/web"
	"github.com/yndnr/snipboard/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Controller serves every board operation.
	Controller *service.TabController

	// Logger for request logging.
	Logger *slog.Logger

	// Metrics receives request metrics and serves /metrics. Nil disables both.
	Metrics *metric.Registry

	// Ready probes storage for GET /ready.
	Ready func(context.Context) error

	// CORSAllowedOrigins is the list of allowed CORS origins (empty = allow all).
	CORSAllowedOrigins []string

	// RateLimit is the per-IP request rate (requests/second); 0 disables.
	RateLimit float64
	RateBurst int

	// MaxUploadBytes limits upload bodies.
	MaxUploadBytes int64

	// EnableAudit enables audit logging for all requests.
	EnableAudit bool
}

// DefaultRouterConfig returns default router configuration.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		Logger:         slog.Default(),
		RateLimit:      50,
		RateBurst:      100,
		MaxUploadBytes: handler.DefaultMaxUploadBytes,
		EnableAudit:    true,
	}
}

// NewRouter creates and configures the HTTP router with all routes and middleware.
//
// Order: Recover -> RequestID -> Audit -> CORS -> RateLimit -> Metrics -> mux
func NewRouter(cfg *RouterConfig) (http.Handler, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	h, err := handler.New(handler.Config{
		Controller:     cfg.Controller,
		Logger:         log,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Ready:          cfg.Ready,
	})
	if err != nil {
		return nil, err
	}

	mux := h.Mux()
	mux.Handle("GET /static/", web.Static())
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
	}

	middlewares := []Middleware{Recover(log), RequestID()}
	if cfg.EnableAudit {
		middlewares = append(middlewares, Audit(log))
	}
	middlewares = append(middlewares, CORS(cfg.CORSAllowedOrigins))
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = max(1, int(cfg.RateLimit))
		}
		middlewares = append(middlewares, RateLimit(cfg.RateLimit, burst))
	}
	if cfg.Metrics != nil {
		middlewares = append(middlewares, Metrics(cfg.Metrics))
	}

	return Chain(h, middlewares...), nil
}
