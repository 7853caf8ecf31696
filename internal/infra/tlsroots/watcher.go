// Package tlsroots provides TLS certificate management.
package tlsroots

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/yndnr/snipboard/internal/infra/confloader"
)

// Watcher serves the server certificate and reloads it when the cert or
// key file is rewritten.
type Watcher struct {
	certFile string
	keyFile  string
	logger   *slog.Logger
	settle   time.Duration

	mu       sync.RWMutex
	cert     *tls.Certificate
	notAfter time.Time

	reloadMu sync.Mutex
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithLogger sets the logger for the watcher.
func WithLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithSettle sets how long the files must stay quiet before a reload.
// Cert and key are usually rewritten back to back.
func WithSettle(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.settle = d
	}
}

// NewWatcher loads the key pair and returns a watcher serving it.
func NewWatcher(certFile, keyFile string, opts ...WatcherOption) (*Watcher, error) {
	w := &Watcher{
		certFile: certFile,
		keyFile:  keyFile,
		logger:   slog.Default(),
		settle:   500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.reload(); err != nil {
		return nil, fmt.Errorf("tlsroots: initial load: %w", err)
	}
	return w, nil
}

// ServerConfig returns a TLS config whose certificate follows reloads.
func (w *Watcher) ServerConfig() *tls.Config {
	return &tls.Config{
		GetCertificate: w.GetCertificate,
		MinVersion:     tls.VersionTLS12,
	}
}

// GetCertificate implements tls.Config.GetCertificate.
func (w *Watcher) GetCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cert, nil
}

// NotAfter reports the expiry of the current certificate.
func (w *Watcher) NotAfter() time.Time {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.notAfter
}

// Run reloads the key pair whenever either file settles after a write,
// until ctx ends. A failed reload keeps the previous certificate.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := confloader.NewWatcher(
		confloader.WithWatcherLogger(w.logger),
		confloader.WithSettle(w.settle),
	)
	if err != nil {
		return fmt.Errorf("tlsroots: create watcher: %w", err)
	}
	defer fw.Stop()

	for _, path := range []string{w.certFile, w.keyFile} {
		if err := fw.Watch(path); err != nil {
			return fmt.Errorf("tlsroots: watch %s: %w", path, err)
		}
	}
	fw.OnChange(func(string) {
		w.reloadMu.Lock()
		defer w.reloadMu.Unlock()
		if err := w.reload(); err != nil {
			w.logger.Error("certificate reload failed",
				"error", err,
				"cert_file", w.certFile,
			)
		}
	})

	w.logger.Info("certificate watcher started",
		"cert_file", w.certFile,
		"not_after", w.NotAfter(),
	)
	fw.Run(ctx)
	return nil
}

func (w *Watcher) reload() error {
	cert, err := tls.LoadX509KeyPair(w.certFile, w.keyFile)
	if err != nil {
		return fmt.Errorf("load key pair: %w", err)
	}
	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return fmt.Errorf("parse leaf: %w", err)
	}
	cert.Leaf = leaf

	w.mu.Lock()
	w.cert = &cert
	w.notAfter = leaf.NotAfter
	w.mu.Unlock()

	w.logger.Info("certificate loaded",
		"cert_file", w.certFile,
		"subject", leaf.Subject.CommonName,
		"not_after", leaf.NotAfter,
	)
	return nil
}
