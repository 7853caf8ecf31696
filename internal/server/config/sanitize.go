package config

import (
	"slices"
	"strings"
)

// Sanitize returns a deep copy of cfg with secrets masked. It is what the
// server logs at startup and what `snipboard-cli config check` prints.
func Sanitize(cfg *ServerConfig) *ServerConfig {
	out := *cfg
	out.Server.HTTP.CORSOrigins = slices.Clone(cfg.Server.HTTP.CORSOrigins)
	out.Upload.AllowedExtensions = slices.Clone(cfg.Upload.AllowedExtensions)
	out.Security.EncryptionKey = maskSecret(cfg.Security.EncryptionKey)
	return &out
}

// maskSecret keeps the first and last two characters of long secrets so
// operators can tell keys apart. Empty stays empty.
func maskSecret(s string) string {
	switch {
	case s == "":
		return ""
	case len(s) <= 8:
		return "********"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
