// Package storage provides the key-value engines behind SnipBoard's
// persistence adapter.
package storage

import (
	"context"
	"errors"
	"time"
)

// Common errors
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrClosed      = errors.New("kv engine closed")
)

// Engine names accepted in configuration.
const (
	EngineBadger = "badger"
	EngineMemory = "memory"
)

// KVEngine defines the interface for embedded key-value storage.
//
// Implementation requirements:
//   - Thread-safe: concurrent reads/writes must be safe
//   - Get returns ErrKeyNotFound for missing keys
//   - Delete of a missing key is not an error
type KVEngine interface {
	// Get retrieves a value by key.
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Set stores a key-value pair.
	Set(ctx context.Context, key, value []byte) error

	// Delete removes a key.
	Delete(ctx context.Context, key []byte) error

	// Scan iterates over keys with a given prefix.
	// Callback returns false to stop iteration.
	Scan(ctx context.Context, prefix []byte, fn func(key, value []byte) bool) error

	// Stats returns storage statistics.
	Stats(ctx context.Context) (*KVStats, error)

	// Close gracefully shuts down the engine.
	Close() error
}

// KVStats contains storage engine statistics.
type KVStats struct {
	// Engine is the engine name ("badger" or "memory").
	Engine string `json:"engine"`

	// TotalKeys is the number of keys (approximate for Badger).
	TotalKeys uint64 `json:"total_keys"`

	// TotalSize is the total size in bytes.
	TotalSize uint64 `json:"total_size"`

	// LSMSize is the LSM tree size (Badger only).
	LSMSize uint64 `json:"lsm_size,omitempty"`

	// ValueLogSize is the value log size (Badger only).
	ValueLogSize uint64 `json:"value_log_size,omitempty"`

	// LastGCTime is the last GC run timestamp (Unix milliseconds).
	LastGCTime int64 `json:"last_gc_time,omitempty"`
}

// KVConfig configures an embedded KV engine.
type KVConfig struct {
	// Engine is EngineBadger or EngineMemory.
	Engine string

	// Dir is the Badger directory.
	Dir string

	Badger BadgerConfig
}

// BadgerConfig tunes the Badger engine. The board is a handful of small
// values rewritten whole, so the defaults favour a small footprint.
type BadgerConfig struct {
	// GCInterval is the period of value log GC. Zero disables the loop;
	// GC can still be run explicitly.
	GCInterval time.Duration

	// GCDiscardRatio is passed to RunValueLogGC, in (0, 1).
	GCDiscardRatio float64

	// CacheSize is the block cache size in bytes.
	CacheSize int64

	// ValueLogFileSize is the max value log file size in bytes.
	ValueLogFileSize int64

	// SyncWrites fsyncs every write. Each board mutation is one write, so
	// this costs one fsync per user action.
	SyncWrites bool
}

// DefaultKVConfig returns the default KV configuration for dir.
func DefaultKVConfig(dir string) KVConfig {
	return KVConfig{
		Engine: EngineBadger,
		Dir:    dir,
		Badger: DefaultBadgerConfig(),
	}
}

// DefaultBadgerConfig returns the default Badger configuration.
func DefaultBadgerConfig() BadgerConfig {
	return BadgerConfig{
		GCInterval:       10 * time.Minute,
		GCDiscardRatio:   0.5,
		CacheSize:        8 << 20,
		ValueLogFileSize: 16 << 20,
		SyncWrites:       true,
	}
}
