// Package util provides common utility functions used across the codebase.
package util

import "strings"

// Truncate shortens s to at most width characters, marking the cut with a
// trailing ellipsis when anything was removed. Width values below 1 return
// an empty string.
func Truncate(s string, width int) string {
	if width < 1 {
		return ""
	}
	if len(s) <= width {
		return s
	}
	if width == 1 {
		return "~"
	}
	return s[:width-1] + "~"
}

// Pad returns s left-aligned in a field of exactly width characters,
// truncating when s is too long. Row alignment depends on every cell
// being exactly its column width.
func Pad(s string, width int) string {
	s = Truncate(s, width)
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// PadLeft returns s right-aligned in a field of exactly width characters.
func PadLeft(s string, width int) string {
	s = Truncate(s, width)
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// Sanitize maps an instance identity to a filesystem-safe token. Anything
// outside [A-Za-z0-9._-] becomes an underscore.
func Sanitize(identity string) string {
	var b strings.Builder
	b.Grow(len(identity))
	for _, r := range identity {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// JoinOrDefault joins strings with "; " or returns the default value for
// empty slices.
func JoinOrDefault(items []string, def string) string {
	if len(items) == 0 {
		return def
	}
	return strings.Join(items, "; ")
}
