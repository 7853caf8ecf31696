// Package localserver serves the board API on a Unix domain socket.
package localserver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/yndnr/snipboard/internal/server/httpserver"
)

// DefaultMode restricts the socket to its owner.
const DefaultMode fs.FileMode = 0o600

// ErrSocketInUse is returned when another process is serving on the path.
var ErrSocketInUse = errors.New("localserver: socket in use")

// Server represents the local socket server.
type Server struct {
	path   string
	mode   fs.FileMode
	logger *slog.Logger
	http   *httpserver.Server

	mu       sync.Mutex
	listener net.Listener
}

// Option configures a Server.
type Option func(*Server)

// WithMode sets the socket file permissions.
func WithMode(mode fs.FileMode) Option {
	return func(s *Server) { s.mode = mode }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// New creates a local server for handler on socketPath.
func New(socketPath string, handler http.Handler, opts ...Option) *Server {
	s := &Server{
		path:   socketPath,
		mode:   DefaultMode,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.http = httpserver.New(httpserver.Options{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}, handler)
	return s
}

// Path returns the socket path.
func (s *Server) Path() string {
	return s.path
}

// Listen binds the socket. It is called by ListenAndServe and exposed so
// callers can bind before serving.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("localserver: create socket dir: %w", err)
	}
	if err := removeStale(s.path); err != nil {
		return err
	}

	ln, err := net.Listen("unix", s.path)
	if err != nil {
		return fmt.Errorf("localserver: listen: %w", err)
	}
	if err := os.Chmod(s.path, s.mode); err != nil {
		ln.Close()
		return fmt.Errorf("localserver: chmod socket: %w", err)
	}

	s.listener = ln
	return nil
}

// ListenAndServe binds the socket and serves until Shutdown.
func (s *Server) ListenAndServe() error {
	if err := s.Listen(); err != nil {
		return err
	}
	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()

	s.logger.Info("local socket listening", "path", s.path)
	return s.http.Serve(ln)
}

// Shutdown stops accepting connections and waits for in-flight requests.
// The socket file is unlinked when the listener closes.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)

	s.mu.Lock()
	ln := s.listener
	s.listener = nil
	s.mu.Unlock()

	// Shutdown closes listeners it is serving; a bound but never served
	// listener still needs closing.
	if ln != nil {
		if cerr := ln.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) && err == nil {
			err = cerr
		}
	}
	return err
}

// removeStale deletes a leftover socket file nobody is listening on.
func removeStale(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("localserver: stat socket: %w", err)
	}
	if info.Mode()&fs.ModeSocket == 0 {
		return fmt.Errorf("localserver: %s exists and is not a socket", path)
	}

	conn, err := net.DialTimeout("unix", path, 500*time.Millisecond)
	if err == nil {
		conn.Close()
		return fmt.Errorf("%w: %s", ErrSocketInUse, path)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("localserver: remove stale socket: %w", err)
	}
	return nil
}
