// Package config defines the server configuration structure.
package config

import (
	"time"

	"github.com/yndnr/snipboard/internal/core/domain"
	"github.com/yndnr/snipboard/internal/storage"
)

// Default configuration values.
const (
	DefaultHTTPAddr     = "127.0.0.1:5080"
	DefaultReadTimeout  = 15 * time.Second
	DefaultWriteTimeout = 15 * time.Second
	DefaultRateLimit    = 50
	DefaultRateBurst    = 100

	DefaultStorageEngine = storage.EngineBadger
	DefaultDataDir       = "/var/lib/snipboard/data"
	DefaultGCInterval    = 10 * time.Minute

	DefaultMaxUploadBytes = 1 << 20 // 1 MiB

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	exts := make([]string, len(domain.DefaultAllowedExtensions))
	copy(exts, domain.DefaultAllowedExtensions)

	return &ServerConfig{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr:         DefaultHTTPAddr,
				ReadTimeout:  DefaultReadTimeout,
				WriteTimeout: DefaultWriteTimeout,
				RateLimit:    DefaultRateLimit,
				RateBurst:    DefaultRateBurst,
			},
		},
		Storage: StorageSection{
			Engine:     DefaultStorageEngine,
			DataDir:    DefaultDataDir,
			GCInterval: DefaultGCInterval,
			SyncWrites: true,
		},
		Upload: UploadSection{
			AllowedExtensions: exts,
			MaxBytes:          DefaultMaxUploadBytes,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
