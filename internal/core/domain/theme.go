// Package domain defines the core domain models for SnipBoard.
package domain

import "strings"

// ThemePreference is the persisted dark-mode setting.
type ThemePreference string

const (
	// ThemeEnabled forces dark mode on.
	ThemeEnabled ThemePreference = "enabled"

	// ThemeDisabled forces dark mode off.
	ThemeDisabled ThemePreference = "disabled"

	// ThemeUnset follows the system preference. It is never stored.
	ThemeUnset ThemePreference = "unset"
)

// ParseThemePreference parses a user-supplied preference.
func ParseThemePreference(s string) (ThemePreference, error) {
	switch ThemePreference(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeEnabled:
		return ThemeEnabled, nil
	case ThemeDisabled:
		return ThemeDisabled, nil
	case ThemeUnset, "":
		return ThemeUnset, nil
	default:
		return ThemeUnset, ErrInvalidTheme.WithDetails("expected enabled, disabled or unset, got " + s)
	}
}

// Toggle returns the opposite explicit preference.
// An unset preference toggles to enabled.
func (p ThemePreference) Toggle() ThemePreference {
	if p == ThemeEnabled {
		return ThemeDisabled
	}
	return ThemeEnabled
}
