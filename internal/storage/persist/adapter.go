// Package persist maps the board onto two keys of a KV engine.
package persist

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/yndnr/snipboard/internal/core/domain"
	"github.com/yndnr/snipboard/internal/storage"
	"github.com/yndnr/snipboard/internal/telemetry/logger"
	"github.com/yndnr/snipboard/pkg/crypto/adaptive"
)

// Storage keys.
const (
	KeyStoredFiles = "storedFiles"
	KeyDarkMode    = "darkMode"
)

// Adapter reads and writes board state through a storage.KVEngine.
type Adapter struct {
	kv     storage.KVEngine
	cipher adaptive.Cipher
	logger logger.Logger
}

// Option configures the Adapter.
type Option func(*Adapter)

// WithCipher seals every value with c before it reaches the engine.
func WithCipher(c adaptive.Cipher) Option {
	return func(a *Adapter) {
		a.cipher = c
	}
}

// WithLogger sets the logger used to report absorbed load failures.
func WithLogger(l logger.Logger) Option {
	return func(a *Adapter) {
		a.logger = l
	}
}

// New creates an Adapter over kv.
func New(kv storage.KVEngine, opts ...Option) *Adapter {
	a := &Adapter{
		kv:     kv,
		logger: logger.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Encrypted reports whether values are sealed at rest.
func (a *Adapter) Encrypted() bool {
	return a.cipher != nil
}

// ============================================================================
// Files
// ============================================================================

// SaveFiles replaces the stored file list.
func (a *Adapter) SaveFiles(ctx context.Context, files []domain.StoredFile) error {
	if files == nil {
		files = []domain.StoredFile{}
	}

	data, err := json.Marshal(files)
	if err != nil {
		return domain.ErrStorageError.WithDetails("encode " + KeyStoredFiles).WithCause(err)
	}
	return a.put(ctx, KeyStoredFiles, data)
}

// LoadFiles returns the stored file list in saved order.
// A missing, undecryptable or malformed value yields an empty list.
func (a *Adapter) LoadFiles(ctx context.Context) []domain.StoredFile {
	data, ok := a.get(ctx, KeyStoredFiles)
	if !ok {
		return []domain.StoredFile{}
	}

	files, err := decodeFiles(data)
	if err != nil {
		a.log(ctx).Warn("discarding unreadable stored files", "error", err, "bytes", len(data))
		return []domain.StoredFile{}
	}
	return files
}

// storedRecord mirrors domain.StoredFile with presence tracking.
type storedRecord struct {
	Name    *string `json:"name"`
	Content *string `json:"content"`
}

var errWrongShape = errors.New("stored files: entry lacks name or content")

// decodeFiles accepts only a JSON array whose every element carries a
// string name and a string content. Any other shape is rejected whole.
func decodeFiles(data []byte) ([]domain.StoredFile, error) {
	var records []storedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	files := make([]domain.StoredFile, 0, len(records))
	for _, r := range records {
		if r.Name == nil || r.Content == nil {
			return nil, errWrongShape
		}
		files = append(files, domain.StoredFile{Name: *r.Name, Content: *r.Content})
	}
	return files, nil
}

// ============================================================================
// Theme
// ============================================================================

// SaveTheme stores the dark-mode preference. ThemeUnset removes the key.
func (a *Adapter) SaveTheme(ctx context.Context, pref domain.ThemePreference) error {
	switch pref {
	case domain.ThemeEnabled, domain.ThemeDisabled:
		return a.put(ctx, KeyDarkMode, []byte(pref))
	case domain.ThemeUnset:
		if err := a.kv.Delete(ctx, []byte(KeyDarkMode)); err != nil {
			return domain.ErrStorageError.WithDetails("delete " + KeyDarkMode).WithCause(err)
		}
		return nil
	default:
		return domain.ErrInvalidTheme.WithDetails(string(pref))
	}
}

// LoadTheme returns the stored preference, or ThemeUnset when the key is
// absent or holds anything other than enabled or disabled.
func (a *Adapter) LoadTheme(ctx context.Context) domain.ThemePreference {
	data, ok := a.get(ctx, KeyDarkMode)
	if !ok {
		return domain.ThemeUnset
	}

	switch pref := domain.ThemePreference(data); pref {
	case domain.ThemeEnabled, domain.ThemeDisabled:
		return pref
	default:
		a.log(ctx).Warn("ignoring unknown stored theme", "value", logger.Truncate(string(data), 16))
		return domain.ThemeUnset
	}
}

// ============================================================================
// Raw access
// ============================================================================

func (a *Adapter) put(ctx context.Context, key string, value []byte) error {
	if a.cipher != nil {
		sealed, err := a.cipher.Encrypt(value, []byte(key))
		if err != nil {
			return domain.ErrStorageError.WithDetails("seal " + key).WithCause(err)
		}
		value = sealed
	}

	if err := a.kv.Set(ctx, []byte(key), value); err != nil {
		return domain.ErrStorageError.WithDetails("write " + key).WithCause(err)
	}
	return nil
}

// get returns the plaintext under key. Read and decryption failures are
// logged and reported as absent.
func (a *Adapter) get(ctx context.Context, key string) ([]byte, bool) {
	value, err := a.kv.Get(ctx, []byte(key))
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			a.log(ctx).Warn("storage read failed", "kv_key", key, "error", err)
		}
		return nil, false
	}

	if a.cipher != nil {
		plain, err := a.cipher.Decrypt(value, []byte(key))
		if err != nil {
			a.log(ctx).Warn("stored value does not decrypt", "kv_key", key, "error", err)
			return nil, false
		}
		value = plain
	}
	return value, true
}

func (a *Adapter) log(ctx context.Context) logger.Logger {
	return a.logger.WithContext(ctx)
}
