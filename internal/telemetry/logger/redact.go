// Package logger provides structured logging for SnipBoard.
package logger

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Key patterns whose values are never written out.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"encryption_key",
	"credential",
	"authorization",
}

// Keys carrying uploaded file bodies. Their values are cut to a preview.
var contentKeys = map[string]bool{
	"content": true,
	"body":    true,
}

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

// ContentPreviewLen is the number of runes of file content kept in logs.
const ContentPreviewLen = 32

// redactSensitive rewrites an attribute before it reaches the handler.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	if a.Value.Kind() != slog.KindString {
		return a
	}

	strVal := a.Value.String()
	if strVal == "" {
		return a
	}
	if IsSensitiveKey(a.Key) {
		return slog.String(a.Key, redactedValue)
	}
	if contentKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, Truncate(strVal, ContentPreviewLen))
	}
	return a
}

// Truncate shortens s to at most n runes, marking the cut with the total
// length so the original size stays visible.
func Truncate(s string, n int) string {
	count := utf8.RuneCountInString(s)
	if count <= n {
		return s
	}

	i := 0
	for pos := range s {
		if i == n {
			return s[:pos] + "...(" + strconv.Itoa(count) + " runes)"
		}
		i++
	}
	return s
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
