package stats

import (
	"fmt"
	"strconv"
	"strings"
)

// Binary byte units, 1024-based.
const (
	kb = 1 << 10
	mb = 1 << 20
	gb = 1 << 30
	tb = 1 << 40
)

// ParseBytes converts a quantity like "123.4 MB", "2GB", or "512B" to
// integer bytes. Units are binary (1024-based) regardless of an "i" infix.
// Malformed input falls back to 0.
func ParseBytes(s string) uint64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	// Split the numeric prefix from the unit suffix.
	cut := len(s)
	for i, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			cut = i
			break
		}
	}
	numPart := s[:cut]
	unitPart := strings.TrimSpace(s[cut:])

	value, err := strconv.ParseFloat(numPart, 64)
	if err != nil || value < 0 {
		return 0
	}

	unit := strings.ToUpper(strings.ReplaceAll(unitPart, "i", ""))
	unit = strings.ReplaceAll(unit, "I", "")
	var mult float64
	switch unit {
	case "", "B":
		mult = 1
	case "KB", "K":
		mult = kb
	case "MB", "M":
		mult = mb
	case "GB", "G":
		mult = gb
	case "TB", "T":
		mult = tb
	default:
		return 0
	}

	return uint64(value * mult)
}

// FormatBytes renders a byte count with one decimal place in the unit
// matching its magnitude. Zero renders as "0B", matching the parser's
// default for an absent field.
func FormatBytes(n uint64) string {
	switch {
	case n == 0:
		return "0B"
	case n < kb:
		return fmt.Sprintf("%.1fB", float64(n))
	case n < mb:
		return fmt.Sprintf("%.1fKB", float64(n)/kb)
	case n < gb:
		return fmt.Sprintf("%.1fMB", float64(n)/mb)
	case n < tb:
		return fmt.Sprintf("%.1fGB", float64(n)/gb)
	default:
		return fmt.Sprintf("%.1fTB", float64(n)/tb)
	}
}
