// Package connection provides the snipboard-cli client for the board API.
package connection

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"
)

// UnixScheme prefixes server addresses that name a local socket.
const UnixScheme = "unix://"

// socketHost is the placeholder host used in URLs sent over a socket.
const socketHost = "http://snipboard"

// SocketPath returns the socket path of a unix:// server address.
func SocketPath(server string) (string, bool) {
	if !strings.HasPrefix(server, UnixScheme) {
		return "", false
	}
	return strings.TrimPrefix(server, UnixScheme), true
}

// socketTransport dials path for every request regardless of URL host.
func socketTransport(path string) *http.Transport {
	dialer := &net.Dialer{Timeout: 5 * time.Second}
	return &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			return dialer.DialContext(ctx, "unix", path)
		},
		MaxIdleConns:    2,
		IdleConnTimeout: 30 * time.Second,
	}
}
