// Package domain defines the core domain models for SnipBoard.
package domain

import (
	"fmt"
	"strconv"
)

// DocumentID identifies an open document.
// IDs come from a per-store monotonic counter and are never reused.
// The zero value means "no document".
type DocumentID uint64

// String returns the decimal form used in URLs and CLI arguments.
func (id DocumentID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseDocumentID parses the decimal form of a DocumentID.
func ParseDocumentID(s string) (DocumentID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, ErrInvalidArgument.WithDetails(fmt.Sprintf("invalid document id %q", s))
	}
	return DocumentID(n), nil
}

// Document is one uploaded or restored text file.
//
// Content is write-once, so Snippets are computed at construction and
// never recomputed.
type Document struct {
	ID       DocumentID `json:"id"`
	Name     string     `json:"name"`
	Content  string     `json:"content"`
	Snippets []Snippet  `json:"snippets"`
}

// NewDocument creates a Document and parses its snippets.
func NewDocument(id DocumentID, name, content string) *Document {
	return &Document{
		ID:       id,
		Name:     name,
		Content:  content,
		Snippets: ParseSnippets(content),
	}
}

// Snippet returns the snippet at index.
func (d *Document) Snippet(index int) (Snippet, error) {
	if index < 0 || index >= len(d.Snippets) {
		return Snippet{}, ErrSnippetNotFound.WithDetails(
			fmt.Sprintf("document %s has %d snippets", d.ID, len(d.Snippets)),
		)
	}
	return d.Snippets[index], nil
}

// Stored returns the persisted form of the document.
func (d *Document) Stored() StoredFile {
	return StoredFile{Name: d.Name, Content: d.Content}
}

// StoredFile is the persisted record of a document.
// Snippets are not persisted; they are re-derived on load.
type StoredFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}
