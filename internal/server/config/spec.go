// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for snipboard-server.
type ServerConfig struct {
	Server   ServerSection   `koanf:"server"`
	Storage  StorageSection  `koanf:"storage"`
	Security SecuritySection `koanf:"security"`
	Upload   UploadSection   `koanf:"upload"`
	Log      LogSection      `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	HTTP  HTTPConfig  `koanf:"http"`
	Local LocalConfig `koanf:"local"`
}

// LocalConfig configures the Unix socket listener used by snipboard-cli
// on the same host. An empty SocketPath disables it.
type LocalConfig struct {
	SocketPath string `koanf:"socket_path"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr        string `koanf:"addr"`
	TLSCertFile string `koanf:"tls_cert_file"`
	TLSKeyFile  string `koanf:"tls_key_file"`

	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// CORSOrigins lists allowed browser origins. Empty allows same-origin only.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimit is the per-client request rate (requests/second).
	// Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`
}

// StorageSection configures storage behavior.
type StorageSection struct {
	// Engine selects the KV engine: "badger" or "memory".
	Engine  string `koanf:"engine"`
	DataDir string `koanf:"data_dir"`

	GCInterval time.Duration `koanf:"gc_interval"`
	SyncWrites bool          `koanf:"sync_writes"`
}

// SecuritySection configures security settings.
type SecuritySection struct {
	// EncryptionKey enables at-rest encryption of stored values when set.
	EncryptionKey string `koanf:"encryption_key"`

	// Cipher is "aes-gcm", "chacha20-poly1305" or empty for automatic.
	Cipher string `koanf:"cipher"`
}

// UploadSection configures the upload policy.
type UploadSection struct {
	AllowedExtensions []string `koanf:"allowed_extensions"`
	MaxBytes          int64    `koanf:"max_bytes"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
