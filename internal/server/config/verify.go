// Package config defines the server configuration structure.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/yndnr/snipboard/internal/storage"
	"github.com/yndnr/snipboard/internal/telemetry/logger"
	"github.com/yndnr/snipboard/pkg/crypto/adaptive"
)

// Verify validates the configuration.
// It creates the data directory for the badger engine if missing.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyStorage(&cfg.Storage); err != nil {
		return err
	}
	if err := verifySecurity(&cfg.Security); err != nil {
		return err
	}
	if err := verifyUpload(&cfg.Upload); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyServer(cfg *ServerSection) error {
	if _, _, err := net.SplitHostPort(cfg.HTTP.Addr); err != nil {
		return fmt.Errorf("server.http.addr %q: %w", cfg.HTTP.Addr, err)
	}

	if (cfg.HTTP.TLSCertFile == "") != (cfg.HTTP.TLSKeyFile == "") {
		return errors.New("server.http.tls_cert_file and tls_key_file must be set together")
	}
	for _, f := range []string{cfg.HTTP.TLSCertFile, cfg.HTTP.TLSKeyFile} {
		if f == "" {
			continue
		}
		if _, err := os.Stat(f); err != nil {
			return fmt.Errorf("tls file: %w", err)
		}
	}

	if p := cfg.Local.SocketPath; p != "" && !filepath.IsAbs(p) {
		return fmt.Errorf("server.local.socket_path %q must be absolute", p)
	}

	if cfg.HTTP.RateLimit < 0 {
		return errors.New("server.http.rate_limit must not be negative")
	}
	if cfg.HTTP.RateLimit > 0 && cfg.HTTP.RateBurst < 1 {
		return errors.New("server.http.rate_burst must be at least 1 when rate limiting")
	}
	return nil
}

func verifyStorage(cfg *StorageSection) error {
	switch cfg.Engine {
	case storage.EngineMemory:
		return nil
	case storage.EngineBadger:
	default:
		return fmt.Errorf("storage.engine must be %q or %q, got %q",
			storage.EngineBadger, storage.EngineMemory, cfg.Engine)
	}

	if cfg.DataDir == "" {
		return errors.New("storage.data_dir is required")
	}

	// Check if data directory exists or can be created
	if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
		return errors.New("cannot create data directory: " + err.Error())
	}

	if cfg.GCInterval <= 0 {
		return errors.New("storage.gc_interval must be positive")
	}
	return nil
}

func verifySecurity(cfg *SecuritySection) error {
	switch adaptive.CipherType(cfg.Cipher) {
	case "", adaptive.CipherAESGCM, adaptive.CipherChaCha20:
	default:
		return fmt.Errorf("security.cipher: unknown cipher %q", cfg.Cipher)
	}

	if cfg.EncryptionKey != "" && len(cfg.EncryptionKey) < adaptive.MinSecretLength {
		return fmt.Errorf("security.encryption_key must be at least %d characters", adaptive.MinSecretLength)
	}
	return nil
}

func verifyUpload(cfg *UploadSection) error {
	for _, ext := range cfg.AllowedExtensions {
		e := strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if e == "" || strings.ContainsAny(e, "./\\") {
			return fmt.Errorf("upload.allowed_extensions: invalid extension %q", ext)
		}
	}
	if cfg.MaxBytes <= 0 {
		return errors.New("upload.max_bytes must be positive")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	if _, err := logger.ParseLevel(cfg.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if err := logger.ValidateFormat(cfg.Format); err != nil {
		return fmt.Errorf("log.format: %w", err)
	}
	return nil
}
