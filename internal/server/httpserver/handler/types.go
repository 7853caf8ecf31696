// Package handler provides HTTP request handlers for SnipBoard.
package handler

import (
	"time"

	"github.com/yndnr/snipboard/internal/core/domain"
)

// Response is the standard API response envelope.
// All JSON responses use this format (except /metrics which uses Prometheus format).
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
	Details   any    `json:"details,omitempty"`
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      "OK",
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(requestID, code, message string, details any) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Details:   details,
	}
}

// DocumentSummary is one tab in list responses.
type DocumentSummary struct {
	ID           domain.DocumentID `json:"id"`
	Name         string            `json:"name"`
	SnippetCount int               `json:"snippet_count"`
	Active       bool              `json:"active"`
}

// ListDocumentsResponse is the response body for GET /api/v1/documents.
type ListDocumentsResponse struct {
	Documents []DocumentSummary `json:"documents"`
	ActiveID  domain.DocumentID `json:"active_id,omitempty"`
}

// DocumentResponse is one document with its snippets.
type DocumentResponse struct {
	ID       domain.DocumentID `json:"id"`
	Name     string            `json:"name"`
	Content  string            `json:"content"`
	Snippets []domain.Snippet  `json:"snippets"`
	Active   bool              `json:"active"`
}

// UploadDocumentRequest is the JSON form of POST /api/v1/documents.
type UploadDocumentRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// ReorderRequest is the request body for POST /api/v1/documents/reorder.
type ReorderRequest struct {
	Order []domain.DocumentID `json:"order"`
}

// ActiveResponse reports the active tab after a tab mutation.
type ActiveResponse struct {
	ActiveID domain.DocumentID `json:"active_id,omitempty"`
}

// ThemeRequest is the request body for PUT /api/v1/theme.
type ThemeRequest struct {
	Preference string `json:"preference"`
}

// ThemeResponse is the response body for the theme endpoints.
type ThemeResponse struct {
	Preference domain.ThemePreference `json:"preference"`
}
