// Package handler provides HTTP request handlers for SnipBoard.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yndnr/snipboard/internal/core/domain"
)

// handleListDocuments handles GET /api/v1/documents.
//
// The ETag is the board fingerprint, so a poller can send If-None-Match
// and receive 304 until a tab is added, closed, moved or activated.
func (h *Handler) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	snap := h.ctrl.Snapshot()

	etag := `"` + snap.Fingerprint() + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	resp := ListDocumentsResponse{
		Documents: make([]DocumentSummary, 0, len(snap.Documents)),
		ActiveID:  snap.ActiveID,
	}
	for _, d := range snap.Documents {
		resp.Documents = append(resp.Documents, DocumentSummary{
			ID:           d.ID,
			Name:         d.Name,
			SnippetCount: len(d.Snippets),
			Active:       d.ID == snap.ActiveID,
		})
	}
	h.writeJSON(w, r, http.StatusOK, resp)
}

// handleUploadDocument handles POST /api/v1/documents.
func (h *Handler) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxUpload {
		h.handleServiceError(w, r, domain.ErrFileTooLarge.WithDetails(limitDetail(h.maxUpload)))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	name, content, err := h.readUpload(r)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	doc, err := h.ctrl.Open(r.Context(), name, content)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/documents/"+doc.ID.String())
	h.writeJSON(w, r, http.StatusCreated, documentResponse(doc, true))
}

// readUpload accepts either a multipart form with a "file" part or a JSON
// UploadDocumentRequest.
func (h *Handler) readUpload(r *http.Request) (name, content string, err error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var data []byte
	switch mediaType {
	case "multipart/form-data":
		file, header, ferr := r.FormFile("file")
		if ferr != nil {
			return "", "", h.uploadReadError(ferr)
		}
		defer file.Close()

		data, err = io.ReadAll(file)
		if err != nil {
			return "", "", h.uploadReadError(err)
		}
		name = path.Base(strings.ReplaceAll(header.Filename, `\`, "/"))

	case "application/json", "":
		var req UploadDocumentRequest
		if derr := json.NewDecoder(r.Body).Decode(&req); derr != nil {
			return "", "", h.uploadReadError(derr)
		}
		name, data = req.Name, []byte(req.Content)

	default:
		return "", "", domain.ErrBadRequest.WithDetails("unsupported content type " + mediaType)
	}

	if strings.TrimSpace(name) == "" {
		return "", "", domain.ErrFileMissing
	}
	if !utf8.Valid(data) {
		return "", "", domain.ErrUnsupportedFileType.WithDetails("content is not UTF-8 text")
	}
	return name, string(data), nil
}

func (h *Handler) uploadReadError(err error) error {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return domain.ErrFileTooLarge.WithDetails(limitDetail(h.maxUpload))
	case errors.Is(err, http.ErrMissingFile):
		return domain.ErrFileMissing
	default:
		return domain.ErrBadRequest.WithCause(err).WithDetails(err.Error())
	}
}

// handleGetDocument handles GET /api/v1/documents/{id}.
func (h *Handler) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseDocumentID(r.PathValue("id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	doc, err := h.ctrl.Document(id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	active := h.ctrl.Snapshot().ActiveID
	h.writeJSON(w, r, http.StatusOK, documentResponse(doc, doc.ID == active))
}

// handleActivateDocument handles POST /api/v1/documents/{id}/activate.
func (h *Handler) handleActivateDocument(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseDocumentID(r.PathValue("id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if err := h.ctrl.Activate(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, ActiveResponse{ActiveID: id})
}

// handleCloseDocument handles DELETE /api/v1/documents/{id}.
func (h *Handler) handleCloseDocument(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseDocumentID(r.PathValue("id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if err := h.ctrl.Close(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, ActiveResponse{ActiveID: h.ctrl.Snapshot().ActiveID})
}

// handleReorderDocuments handles POST /api/v1/documents/reorder.
func (h *Handler) handleReorderDocuments(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceError(w, r, domain.ErrBadRequest.WithDetails("invalid request body"))
		return
	}

	if err := h.ctrl.Reorder(r.Context(), req.Order); err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.handleListDocuments(w, r)
}

// handleGetSnippet handles GET /api/v1/documents/{id}/snippets/{index}.
// The body is the bare command so the page can copy it verbatim.
func (h *Handler) handleGetSnippet(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseDocumentID(r.PathValue("id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		h.handleServiceError(w, r, domain.ErrInvalidArgument.WithDetails("invalid snippet index "+strconv.Quote(r.PathValue("index"))))
		return
	}

	snippet, err := h.ctrl.Snippet(id, index)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, snippet.Command)
}

// handleExport handles GET /api/v1/export.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, h.ctrl.ExportFiles())
}

func documentResponse(d *domain.Document, active bool) DocumentResponse {
	return DocumentResponse{
		ID:       d.ID,
		Name:     d.Name,
		Content:  d.Content,
		Snippets: d.Snippets,
		Active:   active,
	}
}

// etagMatches implements the If-None-Match comparison (weak).
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

func limitDetail(n int64) string {
	return "limit is " + strconv.FormatInt(n, 10) + " bytes"
}
