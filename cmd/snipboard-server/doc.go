// Package main provides the entry point for snipboard-server.
//
// The server hosts one snippet board:
//
//   - HTTP/HTTPS board page and JSON API on server.http.addr
//   - Optional Unix socket serving the same routes for snipboard-cli
//   - Prometheus metrics on /metrics
//
// Usage:
//
//	snipboard-server [flags]
//	snipboard-server -config /path/to/config.yaml
//	snipboard-server -addr 127.0.0.1:8080 -data-dir ./data
//
// Settings are read from the optional YAML file and SNIPBOARD_* environment
// variables. Changing log.level in the file takes effect without a restart.
package main
