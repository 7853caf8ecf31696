// Package service provides the board services for SnipBoard.
package service

import (
	"context"
	"sync"

	"github.com/yndnr/snipboard/internal/core/domain"
	"github.com/yndnr/snipboard/internal/telemetry/logger"
	"github.com/yndnr/snipboard/internal/telemetry/metric"
)

// Persister defines the storage interface for the open document list.
//
// LoadFiles never fails; unreadable state loads as an empty list.
type Persister interface {
	SaveFiles(ctx context.Context, files []domain.StoredFile) error
	LoadFiles(ctx context.Context) []domain.StoredFile
}

// DocumentStore is the authoritative ordered collection of open documents
// plus the active-document pointer.
//
// Every mutation is followed by a save while the lock is still held, so
// the persisted list always matches some state the store passed through.
type DocumentStore struct {
	mu sync.Mutex

	docs     []*domain.Document
	activeID domain.DocumentID // 0 = none
	lastID   domain.DocumentID

	persister   Persister
	lastSaveErr error

	metrics *metric.Registry
	logger  logger.Logger
}

// StoreOption configures the DocumentStore.
type StoreOption func(*DocumentStore)

// WithStoreMetrics records store activity in r.
func WithStoreMetrics(r *metric.Registry) StoreOption {
	return func(s *DocumentStore) {
		s.metrics = r
	}
}

// WithStoreLogger sets the logger used for save failures.
func WithStoreLogger(l logger.Logger) StoreOption {
	return func(s *DocumentStore) {
		s.logger = l
	}
}

// NewDocumentStore creates an empty store saving through p.
func NewDocumentStore(p Persister, opts ...StoreOption) *DocumentStore {
	s := &DocumentStore{
		persister: p,
		logger:    logger.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ============================================================================
// Mutations
// ============================================================================

// AddDocument parses content, appends a new document to the end of the
// tab order and makes it active. It never fails; a failed save is
// recorded and reported by LastSaveError.
func (s *DocumentStore) AddDocument(ctx context.Context, name, content string) *domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.appendLocked(name, content)
	s.activeID = doc.ID

	s.record("add", "ok")
	s.saveLocked(ctx)
	return doc
}

// CloseDocument removes the document with id. When it was active, the
// first remaining document becomes active, or none if the board is now
// empty. An unknown id returns false without touching state or storage.
func (s *DocumentStore) CloseDocument(ctx context.Context, id domain.DocumentID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		s.record("close", "not_found")
		return false
	}

	s.docs = append(s.docs[:idx], s.docs[idx+1:]...)

	if s.activeID == id {
		s.activeID = 0
		if len(s.docs) > 0 {
			s.activeID = s.docs[0].ID
		}
	}

	s.record("close", "ok")
	s.saveLocked(ctx)
	return true
}

// SetActive makes id the active document. An unknown id returns false and
// leaves the pointer unchanged.
func (s *DocumentStore) SetActive(ctx context.Context, id domain.DocumentID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(id) < 0 {
		s.record("activate", "not_found")
		return false
	}

	s.activeID = id

	s.record("activate", "ok")
	s.saveLocked(ctx)
	return true
}

// Reorder rearranges the documents into newOrder. newOrder must be a
// permutation of the current ids: same length, no duplicates, no unknown
// ids. Otherwise ErrInvalidReorder is returned and nothing changes.
// The active pointer is unaffected.
func (s *DocumentStore) Reorder(ctx context.Context, newOrder []domain.DocumentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(newOrder) != len(s.docs) {
		s.record("reorder", "invalid")
		return domain.ErrInvalidReorder.WithDetails("order must list every open tab exactly once")
	}

	byID := make(map[domain.DocumentID]*domain.Document, len(s.docs))
	for _, d := range s.docs {
		byID[d.ID] = d
	}

	reordered := make([]*domain.Document, 0, len(newOrder))
	for _, id := range newOrder {
		d, ok := byID[id]
		if !ok {
			s.record("reorder", "invalid")
			return domain.ErrInvalidReorder.WithDetails("unknown or repeated tab " + id.String())
		}
		delete(byID, id)
		reordered = append(reordered, d)
	}

	s.docs = reordered

	s.record("reorder", "ok")
	s.saveLocked(ctx)
	return nil
}

// Restore loads the saved documents and appends them in saved order
// without saving per item. The first restored document becomes active.
// It returns the number of documents restored.
func (s *DocumentStore) Restore(ctx context.Context) int {
	files := s.persister.LoadFiles(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	var first domain.DocumentID
	for _, f := range files {
		doc := s.appendLocked(f.Name, f.Content)
		if first == 0 {
			first = doc.ID
		}
	}
	if first != 0 {
		s.activeID = first
	}

	s.metrics.SetDocumentsOpen(len(s.docs))
	s.record("restore", "ok")
	return len(files)
}

// ============================================================================
// Queries
// ============================================================================

// Documents returns the open documents in tab order.
// The slice is a copy; the documents themselves are immutable.
func (s *DocumentStore) Documents() []*domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// ActiveID returns the active document id, if any.
func (s *DocumentStore) ActiveID() (domain.DocumentID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID, s.activeID != 0
}

// Snapshot returns the documents in tab order together with the active
// id, read under one lock. The id is zero exactly when the board is empty.
func (s *DocumentStore) Snapshot() ([]*domain.Document, domain.DocumentID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Document, len(s.docs))
	copy(out, s.docs)
	return out, s.activeID
}

// Get returns the open document with id.
func (s *DocumentStore) Get(id domain.DocumentID) (*domain.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexLocked(id); idx >= 0 {
		return s.docs[idx], true
	}
	return nil, false
}

// Len returns the number of open documents.
func (s *DocumentStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

// StoredFiles returns the board in its persisted form.
func (s *DocumentStore) StoredFiles() []domain.StoredFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storedLocked()
}

// LastSaveError returns the error of the most recent save, or nil if it
// succeeded.
func (s *DocumentStore) LastSaveError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaveErr
}

// ============================================================================
// Internal
// ============================================================================

func (s *DocumentStore) appendLocked(name, content string) *domain.Document {
	s.lastID++
	doc := domain.NewDocument(s.lastID, name, content)
	s.docs = append(s.docs, doc)
	return doc
}

func (s *DocumentStore) indexLocked(id domain.DocumentID) int {
	if id == 0 {
		return -1
	}
	for i, d := range s.docs {
		if d.ID == id {
			return i
		}
	}
	return -1
}

func (s *DocumentStore) storedLocked() []domain.StoredFile {
	files := make([]domain.StoredFile, len(s.docs))
	for i, d := range s.docs {
		files[i] = d.Stored()
	}
	return files
}

// saveLocked persists the current list. Failures are absorbed: in-memory
// state stays authoritative.
func (s *DocumentStore) saveLocked(ctx context.Context) {
	s.metrics.SetDocumentsOpen(len(s.docs))

	err := s.persister.SaveFiles(ctx, s.storedLocked())
	s.lastSaveErr = err
	if err != nil {
		s.metrics.IncSaveFailure()
		s.logger.WithContext(ctx).Error("board save failed",
			"documents", len(s.docs),
			"error", err)
	}
}

func (s *DocumentStore) record(op, result string) {
	s.metrics.RecordStoreOp(op, result)
}
