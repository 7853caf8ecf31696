// Package logger provides structured logging for SnipBoard.
//
// It wraps log/slog:
//
//   - logger.go: handler setup, dynamic level, package-level helpers
//   - context.go: logger and request ID propagation through context
//   - redact.go: secret redaction and truncation of file content
//
// Features:
//
//   - JSON and text output formats
//   - Log level changes at runtime (config reload)
//   - Secrets such as the storage encryption key never reach the output
//   - Uploaded file content is cut to a short preview
package logger
