// Package httpserver serves the SnipBoard board page and JSON API.
//
// Routes are registered by the handler package on a stdlib ServeMux:
//
//   - Board page: GET /, GET /static/*
//   - Documents: /api/v1/documents, /api/v1/documents/{id}, .../activate,
//     .../snippets/{index}, /api/v1/documents/reorder
//   - Theme and export: /api/v1/theme, /api/v1/export
//   - Health: /health, /ready, /metrics, /api/v1/version
//
// The middleware chain adds request ids, panic recovery, audit logging,
// CORS, per-IP rate limiting and Prometheus request metrics. TLS
// certificates are hot-reloaded through tlsroots.Watcher.
package httpserver
