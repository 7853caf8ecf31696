// Package domain defines the core domain models for SnipBoard.
package domain

import "strings"

// CommentPrefix marks a line as a comment rather than a command.
const CommentPrefix = "#"

// Snippet is one command line paired with its immediately preceding,
// not yet consumed comment line.
type Snippet struct {
	// Comment is the trimmed comment line, including the leading "#".
	// Empty when HasComment is false.
	Comment string `json:"comment,omitempty"`

	// HasComment reports whether a comment was attached.
	HasComment bool `json:"has_comment"`

	// Command is the trimmed command line.
	Command string `json:"command"`
}

// ParseSnippets splits content into snippets.
//
// Blank lines are skipped and do not clear a pending comment. A comment
// line replaces any pending comment, so a comment with no command after it
// is dropped. Each command consumes the pending comment.
//
// ParseSnippets accepts any input and always returns a non-nil slice.
func ParseSnippets(content string) []Snippet {
	snippets := make([]Snippet, 0)

	var (
		pending    string
		hasPending bool
	)

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, CommentPrefix) {
			pending = trimmed
			hasPending = true
			continue
		}

		snippets = append(snippets, Snippet{
			Comment:    pending,
			HasComment: hasPending,
			Command:    trimmed,
		})
		pending, hasPending = "", false
	}

	return snippets
}
