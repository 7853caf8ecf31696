// Package handler implements the SnipBoard HTTP API and board page.
//
// JSON responses share one envelope (see Response); domain error codes
// map to HTTP status by their numeric suffix.
package handler
