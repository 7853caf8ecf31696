// Package service provides the board services for SnipBoard.
package service

import (
	"context"
	"encoding/binary"
	"strconv"

	"github.com/spaolacci/murmur3"

	"github.com/yndnr/snipboard/internal/core/domain"
	"github.com/yndnr/snipboard/internal/telemetry/metric"
)

// ThemeStore defines the storage interface for the dark-mode preference.
type ThemeStore interface {
	SaveTheme(ctx context.Context, pref domain.ThemePreference) error
	LoadTheme(ctx context.Context) domain.ThemePreference
}

// TabController maps board operations onto the DocumentStore.
//
// Presentation code goes through the controller only; it never mutates
// the store directly.
type TabController struct {
	store   *DocumentStore
	themes  ThemeStore
	policy  *domain.UploadPolicy
	metrics *metric.Registry
}

// ControllerOption configures the TabController.
type ControllerOption func(*TabController)

// WithUploadPolicy replaces the default extension allow-list.
func WithUploadPolicy(p *domain.UploadPolicy) ControllerOption {
	return func(c *TabController) {
		c.policy = p
	}
}

// WithControllerMetrics records upload rejections and theme changes in r.
func WithControllerMetrics(r *metric.Registry) ControllerOption {
	return func(c *TabController) {
		c.metrics = r
	}
}

// NewTabController creates a controller over store and themes.
func NewTabController(store *DocumentStore, themes ThemeStore, opts ...ControllerOption) *TabController {
	c := &TabController{
		store:  store,
		themes: themes,
		policy: domain.NewUploadPolicy(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ============================================================================
// Tabs
// ============================================================================

// Open validates an uploaded file, strips script blocks from its content
// and adds it as the new active tab.
func (c *TabController) Open(ctx context.Context, name, content string) (*domain.Document, error) {
	if err := c.policy.Validate(name); err != nil {
		c.metrics.RecordUploadRejected(rejectReason(err))
		return nil, err
	}
	return c.store.AddDocument(ctx, name, domain.SanitizeContent(content)), nil
}

// AllowedExtensions lists the extensions Open accepts.
func (c *TabController) AllowedExtensions() []string {
	return c.policy.Extensions()
}

// Activate makes id the active tab.
func (c *TabController) Activate(ctx context.Context, id domain.DocumentID) error {
	if !c.store.SetActive(ctx, id) {
		return domain.ErrTabNotFound.WithDetails("tab " + id.String())
	}
	return nil
}

// Close closes tab id. If it was active, the first remaining tab becomes
// active.
func (c *TabController) Close(ctx context.Context, id domain.DocumentID) error {
	if !c.store.CloseDocument(ctx, id) {
		return domain.ErrTabNotFound.WithDetails("tab " + id.String())
	}
	return nil
}

// Reorder applies a new tab order. ids must be a permutation of the open
// tab ids.
func (c *TabController) Reorder(ctx context.Context, ids []domain.DocumentID) error {
	return c.store.Reorder(ctx, ids)
}

// Document returns the open document with id.
func (c *TabController) Document(id domain.DocumentID) (*domain.Document, error) {
	doc, ok := c.store.Get(id)
	if !ok {
		return nil, domain.ErrTabNotFound.WithDetails("tab " + id.String())
	}
	return doc, nil
}

// Snippet returns snippet index of document id.
func (c *TabController) Snippet(id domain.DocumentID, index int) (domain.Snippet, error) {
	doc, err := c.Document(id)
	if err != nil {
		return domain.Snippet{}, err
	}
	return doc.Snippet(index)
}

// ExportFiles returns the board exactly as it is persisted.
func (c *TabController) ExportFiles() []domain.StoredFile {
	return c.store.StoredFiles()
}

// LastSaveError reports whether the most recent save reached storage.
func (c *TabController) LastSaveError() error {
	return c.store.LastSaveError()
}

// ============================================================================
// Snapshot
// ============================================================================

// BoardSnapshot is a read-only view of the board for rendering.
type BoardSnapshot struct {
	Documents []*domain.Document `json:"documents"`
	ActiveID  domain.DocumentID  `json:"active_id"`
}

// Snapshot returns the documents in tab order and the active id. ActiveID
// always names one of Documents unless the board is empty.
func (c *TabController) Snapshot() BoardSnapshot {
	docs, active := c.store.Snapshot()
	return BoardSnapshot{Documents: docs, ActiveID: active}
}

// Fingerprint hashes tab order, names and the active id. It changes
// whenever the rendered board would.
func (b BoardSnapshot) Fingerprint() string {
	h := murmur3.New64()
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], uint64(b.ActiveID))
	h.Write(buf[:])
	for _, d := range b.Documents {
		binary.LittleEndian.PutUint64(buf[:], uint64(d.ID))
		h.Write(buf[:])
		h.Write([]byte(d.Name))
		h.Write([]byte{0})
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// ============================================================================
// Theme
// ============================================================================

// Theme returns the stored dark-mode preference.
func (c *TabController) Theme(ctx context.Context) domain.ThemePreference {
	return c.themes.LoadTheme(ctx)
}

// SetTheme stores the dark-mode preference.
func (c *TabController) SetTheme(ctx context.Context, pref domain.ThemePreference) error {
	if err := c.themes.SaveTheme(ctx, pref); err != nil {
		return err
	}
	c.metrics.RecordThemeChange(string(pref))
	return nil
}

func rejectReason(err error) string {
	switch domain.GetErrorCode(err) {
	case domain.ErrFileMissing.Code:
		return "missing"
	case domain.ErrUnsupportedFileType.Code:
		return "unsupported_type"
	default:
		return "other"
	}
}
