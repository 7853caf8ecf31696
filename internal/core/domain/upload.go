// Package domain defines the core domain models for SnipBoard.
package domain

import (
	"path"
	"regexp"
	"sort"
	"strings"
)

// DefaultAllowedExtensions lists the file extensions accepted for upload.
var DefaultAllowedExtensions = []string{
	"sh", "txt", "md", "json", "yaml", "yml", "xml", "py", "php", "rb", "pl",
	"java", "cpp", "c", "h", "go", "cs", "ts", "tsx", "html", "css", "js",
	"sql", "bat", "cmd", "ps1",
}

// UploadPolicy checks uploaded file names against an extension allow-list.
type UploadPolicy struct {
	allowed map[string]struct{}
}

// NewUploadPolicy creates a policy for the given extensions.
// An empty list falls back to DefaultAllowedExtensions.
func NewUploadPolicy(extensions []string) *UploadPolicy {
	if len(extensions) == 0 {
		extensions = DefaultAllowedExtensions
	}
	p := &UploadPolicy{allowed: make(map[string]struct{}, len(extensions))}
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			p.allowed[ext] = struct{}{}
		}
	}
	return p
}

// Validate checks the file name.
// The extension is the text after the last ".", compared case-insensitively.
// A name without a dot is treated as its own extension.
func (p *UploadPolicy) Validate(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrFileMissing
	}

	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	ext := base
	if idx := strings.LastIndex(base, "."); idx >= 0 {
		ext = base[idx+1:]
	}

	if _, ok := p.allowed[strings.ToLower(ext)]; !ok {
		return ErrUnsupportedFileType.WithDetails(name)
	}
	return nil
}

// Extensions returns the allowed extensions, sorted, each with a leading
// dot (the form an <input accept> attribute expects).
func (p *UploadPolicy) Extensions() []string {
	out := make([]string, 0, len(p.allowed))
	for ext := range p.allowed {
		out = append(out, "."+ext)
	}
	sort.Strings(out)
	return out
}

var scriptBlock = regexp.MustCompile(`(?is)<script\b[^<]*(?:<[^<]*)*?</script>`)

// SanitizeContent removes <script>...</script> blocks from uploaded text.
func SanitizeContent(content string) string {
	return scriptBlock.ReplaceAllString(content, "")
}
