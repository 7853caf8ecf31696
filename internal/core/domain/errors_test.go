// Package domain defines the core domain models for SnipBoard.
package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name:     "error without details",
			err:      NewDomainError("SB-TEST-1000", "test message"),
			expected: "[SB-TEST-1000] test message",
		},
		{
			name:     "error with details",
			err:      NewDomainError("SB-TEST-1001", "test message").WithDetails("extra info"),
			expected: "[SB-TEST-1001] test message: extra info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDomainError_Is(t *testing.T) {
	err1 := NewDomainError("SB-TEST-1000", "message 1")
	err2 := NewDomainError("SB-TEST-1000", "message 2") // Same code, different message
	err3 := NewDomainError("SB-TEST-1001", "message 1") // Different code

	// Same code should match
	if !errors.Is(err1, err2) {
		t.Error("errors.Is should return true for same error code")
	}

	// Different code should not match
	if errors.Is(err1, err3) {
		t.Error("errors.Is should return false for different error code")
	}

	// Should not match non-DomainError
	if errors.Is(err1, fmt.Errorf("some error")) {
		t.Error("errors.Is should return false for non-DomainError")
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying cause")
	err := NewDomainError("SB-TEST-1000", "wrapper").WithCause(cause)

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Without cause
	errNoCause := NewDomainError("SB-TEST-1000", "no cause")
	if errors.Unwrap(errNoCause) != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestDomainError_WithDetails(t *testing.T) {
	original := NewDomainError("SB-TEST-1000", "original message")
	withDetails := original.WithDetails("additional details")

	// Check original is unchanged
	if original.Details != "" {
		t.Error("WithDetails should not modify original error")
	}

	// Check new error has details
	if withDetails.Details != "additional details" {
		t.Errorf("Details = %q, want %q", withDetails.Details, "additional details")
	}

	// Check code and message are preserved
	if withDetails.Code != original.Code {
		t.Errorf("Code = %q, want %q", withDetails.Code, original.Code)
	}
	if withDetails.Message != original.Message {
		t.Errorf("Message = %q, want %q", withDetails.Message, original.Message)
	}
}

func TestDomainError_WithCause(t *testing.T) {
	original := NewDomainError("SB-TEST-1000", "original message")
	cause := fmt.Errorf("root cause")
	withCause := original.WithCause(cause)

	// Check original is unchanged
	if original.Cause != nil {
		t.Error("WithCause should not modify original error")
	}

	// Check new error has cause
	if withCause.Cause != cause {
		t.Errorf("Cause = %v, want %v", withCause.Cause, cause)
	}

	// Check code and message are preserved
	if withCause.Code != original.Code {
		t.Errorf("Code = %q, want %q", withCause.Code, original.Code)
	}
}

func TestIsDomainError(t *testing.T) {
	err := ErrTabNotFound

	if !IsDomainError(err, "SB-TAB-4040") {
		t.Error("IsDomainError should return true for matching code")
	}

	if IsDomainError(err, "SB-TAB-9999") {
		t.Error("IsDomainError should return false for non-matching code")
	}

	if IsDomainError(fmt.Errorf("regular error"), "SB-TAB-4040") {
		t.Error("IsDomainError should return false for non-DomainError")
	}

	// Test with wrapped error
	wrapped := fmt.Errorf("wrapped: %w", ErrTabNotFound)
	if !IsDomainError(wrapped, "SB-TAB-4040") {
		t.Error("IsDomainError should work with wrapped errors")
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "domain error",
			err:      ErrTabNotFound,
			expected: "SB-TAB-4040",
		},
		{
			name:     "wrapped domain error",
			err:      fmt.Errorf("wrapped: %w", ErrUnsupportedFileType),
			expected: "SB-UPL-4002",
		},
		{
			name:     "regular error",
			err:      fmt.Errorf("regular error"),
			expected: "",
		},
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetErrorCode(tt.err); got != tt.expected {
				t.Errorf("GetErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPredefinedErrors(t *testing.T) {
	// Verify all predefined errors have correct codes
	tests := []struct {
		err  *DomainError
		code string
	}{
		// Tab errors
		{ErrTabNotFound, "SB-TAB-4040"},
		{ErrSnippetNotFound, "SB-TAB-4041"},
		{ErrInvalidReorder, "SB-TAB-4090"},

		// Upload errors
		{ErrFileMissing, "SB-UPL-4001"},
		{ErrUnsupportedFileType, "SB-UPL-4002"},
		{ErrFileTooLarge, "SB-UPL-4130"},

		// Theme errors
		{ErrInvalidTheme, "SB-THM-4001"},

		// System errors
		{ErrInternalServer, "SB-SYS-5000"},
		{ErrStorageError, "SB-SYS-5001"},
		{ErrNotReady, "SB-SYS-5030"},
		{ErrBadRequest, "SB-SYS-4000"},
		{ErrRateLimited, "SB-SYS-4290"},

		// Argument errors
		{ErrInvalidArgument, "SB-ARG-1001"},
		{ErrMissingArgument, "SB-ARG-1002"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Error code = %q, want %q", tt.err.Code, tt.code)
			}
			if tt.err.Message == "" {
				t.Error("Error message should not be empty")
			}
		})
	}
}

func TestStatusForCode(t *testing.T) {
	tests := map[string]int{
		"SB-TAB-4040": 404,
		"SB-TAB-4041": 404,
		"SB-TAB-4090": 409,
		"SB-UPL-4001": 400,
		"SB-UPL-4002": 400,
		"SB-UPL-4130": 413,
		"SB-SYS-4000": 400,
		"SB-SYS-4290": 429,
		"SB-SYS-5030": 503,
		"SB-SYS-5001": 500,
		"SB-ARG-1001": 400,
		"SB-TAB-404":  500,
		"SB-TAB-0040": 500,
		"XX-TAB-4040": 500,
		"":            500,
	}
	for code, want := range tests {
		if got := StatusForCode(code); got != want {
			t.Errorf("StatusForCode(%q) = %d, want %d", code, got, want)
		}
	}
	if got := ErrTabNotFound.WithDetails("id 7").Status(); got != 404 {
		t.Errorf("Status() = %d, want 404", got)
	}
}

func TestErrorChaining(t *testing.T) {
	// Test chaining WithDetails and WithCause
	cause := fmt.Errorf("root cause")
	err := ErrTabNotFound.
		WithDetails("document_id: 42").
		WithCause(cause)

	// Verify all properties are preserved
	if err.Code != "SB-TAB-4040" {
		t.Errorf("Code = %q, want %q", err.Code, "SB-TAB-4040")
	}
	if err.Details != "document_id: 42" {
		t.Errorf("Details = %q", err.Details)
	}
	if err.Cause != cause {
		t.Error("Cause should be preserved")
	}

	// Verify errors.Is still works
	if !errors.Is(err, ErrTabNotFound) {
		t.Error("errors.Is should work after chaining")
	}
}
