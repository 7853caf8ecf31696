// Package domain defines the core domain models for SnipBoard.
package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DomainError is an error with a stable code of the form SB-<AREA>-<NNNN>.
// For every area except ARG the four digits are the HTTP status followed
// by a sequence digit: SB-TAB-4041 is the second 404 of the TAB area.
type DomainError struct {
	Code    string
	Message string
	Details string
	Cause   error
}

func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches any *DomainError with the same code, so a copy made by
// WithDetails still satisfies errors.Is against the sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && e.Code == t.Code
}

// NewDomainError creates a DomainError.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// WithDetails returns a copy of e carrying details.
func (e *DomainError) WithDetails(details string) *DomainError {
	c := *e
	c.Details = details
	return &c
}

// WithCause returns a copy of e wrapping cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	c := *e
	c.Cause = cause
	return &c
}

// Status returns the HTTP status for e. See StatusForCode.
func (e *DomainError) Status() int {
	return StatusForCode(e.Code)
}

// StatusForCode derives the HTTP status from a code's digits. ARG codes
// are client errors (400); codes that do not parse map to 500.
func StatusForCode(code string) int {
	parts := strings.Split(code, "-")
	if len(parts) != 3 || parts[0] != "SB" {
		return 500
	}
	if parts[1] == "ARG" {
		return 400
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || len(parts[2]) != 4 {
		return 500
	}
	if status := n / 10; status >= 400 && status < 600 {
		return status
	}
	return 500
}

// IsDomainError reports whether err wraps a DomainError with code, or any
// DomainError when code is empty.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if !errors.As(err, &de) {
		return false
	}
	return code == "" || de.Code == code
}

// GetErrorCode returns the code of the DomainError wrapped by err, or "".
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Tab / Document Errors (TAB)
// ============================================================================

var (
	// ErrTabNotFound indicates no open document has the requested id.
	ErrTabNotFound = NewDomainError("SB-TAB-4040", "no such tab")

	// ErrSnippetNotFound indicates the snippet index is out of range.
	ErrSnippetNotFound = NewDomainError("SB-TAB-4041", "no such snippet")

	// ErrInvalidReorder indicates the new order is not a permutation of the open ids.
	ErrInvalidReorder = NewDomainError("SB-TAB-4090", "reorder is not a permutation of open tabs")
)

// ============================================================================
// Upload Errors (UPL)
// ============================================================================

var (
	// ErrFileMissing indicates the upload carried no file.
	ErrFileMissing = NewDomainError("SB-UPL-4001", "please upload a valid file")

	// ErrUnsupportedFileType indicates the file extension is not allow-listed.
	ErrUnsupportedFileType = NewDomainError("SB-UPL-4002", "unsupported file type")

	// ErrFileTooLarge indicates the upload exceeds the configured size limit.
	ErrFileTooLarge = NewDomainError("SB-UPL-4130", "file too large")
)

// ============================================================================
// Theme Errors (THM)
// ============================================================================

var (
	// ErrInvalidTheme indicates an unknown theme preference value.
	ErrInvalidTheme = NewDomainError("SB-THM-4001", "invalid theme preference")
)

// ============================================================================
// System Errors (SYS)
// ============================================================================

var (
	// ErrInternalServer indicates an internal server error.
	ErrInternalServer = NewDomainError("SB-SYS-5000", "internal server error")

	// ErrStorageError indicates a storage layer error.
	ErrStorageError = NewDomainError("SB-SYS-5001", "storage error")

	// ErrNotReady indicates a dependency failed its readiness check.
	ErrNotReady = NewDomainError("SB-SYS-5030", "service not ready")

	// ErrBadRequest indicates a malformed request.
	ErrBadRequest = NewDomainError("SB-SYS-4000", "bad request")

	// ErrRateLimited indicates too many requests.
	ErrRateLimited = NewDomainError("SB-SYS-4290", "too many requests")
)

// ============================================================================
// Argument Errors (ARG)
// ============================================================================

var (
	// ErrInvalidArgument indicates an invalid argument.
	ErrInvalidArgument = NewDomainError("SB-ARG-1001", "invalid argument")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("SB-ARG-1002", "missing required argument")
)
