// Package domain defines the core domain models for SnipBoard.
//
// Domain models are pure value objects without any IO dependencies or
// framework coupling. This package contains:
//
//   - Snippet: one command line paired with the comment line above it
//   - Document: an uploaded file with its parsed snippets
//   - StoredFile: the persisted {name, content} record of a document
//   - ThemePreference: the persisted dark-mode setting
//   - Upload policy: extension allow-list and script stripping
//   - Errors: domain error codes shared by every layer
package domain
