// Package stats extracts structured fields from the freeform status line a
// conduit instance writes to its log. Parsing is tolerant: each field has
// its own fallback and malformed input never produces an error, only
// defaults.
package stats

import (
	"strconv"
	"strings"
)

// Fields is the parsed form of one status line.
type Fields struct {
	Pending      uint
	Active       uint
	IngressBytes uint64
	EgressBytes  uint64
	Uptime       string
}

// Defaults returns the zero-value fields used when no status line exists:
// counters at zero, byte quantities at zero, uptime shown as "-".
func Defaults() Fields {
	return Fields{Uptime: "-"}
}

// statKeys are the field names recognized in a status line. A line
// containing none of them is not a status line.
var statKeys = map[string]struct{}{
	"pending": {},
	"active":  {},
	"up":      {},
	"down":    {},
	"uptime":  {},
}

// Parse extracts fields from a single status line. Each field falls back
// independently: pending/active to 0 on absent or non-numeric values,
// ingress/egress to zero bytes, uptime to "-".
func Parse(line string) Fields {
	f := Defaults()
	for key, value := range pairs(line) {
		switch key {
		case "pending":
			f.Pending = parseCount(value)
		case "active":
			f.Active = parseCount(value)
		case "up":
			f.IngressBytes = ParseBytes(value)
		case "down":
			f.EgressBytes = ParseBytes(value)
		case "uptime":
			if value != "" {
				f.Uptime = value
			}
		}
	}
	return f
}

// IsStatsLine reports whether line carries at least one recognized field.
func IsStatsLine(line string) bool {
	for key := range pairs(line) {
		if _, ok := statKeys[key]; ok {
			return true
		}
	}
	return false
}

// FindStatsLine returns the most recent status line in a log tail, or ""
// when none of the lines qualify.
func FindStatsLine(lines []string) string {
	for i := len(lines) - 1; i >= 0; i-- {
		if IsStatsLine(lines[i]) {
			return strings.TrimSpace(lines[i])
		}
	}
	return ""
}

// pairs tokenizes a line into key/value pairs. Both "key=value" and
// "key: value" forms occur in the wild; commas between pairs are ignored.
// Byte quantities may carry their unit in the following token
// ("up=123.4 MB"); the unit is folded back into the value.
func pairs(line string) map[string]string {
	out := make(map[string]string)
	tokens := strings.Fields(strings.ReplaceAll(line, ",", " "))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if eq := strings.IndexByte(tok, '='); eq > 0 {
			key := normalizeKey(tok[:eq])
			value := tok[eq+1:]
			if isByteKey(key) && isNumeral(value) && i+1 < len(tokens) && isByteUnit(tokens[i+1]) {
				value += tokens[i+1]
				i++
			}
			out[key] = value
			continue
		}
		if strings.HasSuffix(tok, ":") && i+1 < len(tokens) {
			key := normalizeKey(tok[:len(tok)-1])
			if _, ok := statKeys[key]; ok {
				value := tokens[i+1]
				i++
				if isByteKey(key) && isNumeral(value) && i+1 < len(tokens) && isByteUnit(tokens[i+1]) {
					value += tokens[i+1]
					i++
				}
				out[key] = value
			}
		}
	}
	return out
}

// isByteKey reports whether the field carries a byte quantity.
func isByteKey(key string) bool {
	return key == "up" || key == "down"
}

// isNumeral reports whether s is a bare number with no unit attached.
func isNumeral(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}

// isByteUnit reports whether tok is a standalone byte unit as accepted by
// ParseBytes.
func isByteUnit(tok string) bool {
	unit := strings.ToUpper(strings.ReplaceAll(tok, "i", ""))
	unit = strings.ReplaceAll(unit, "I", "")
	switch unit {
	case "B", "K", "KB", "M", "MB", "G", "GB", "T", "TB":
		return true
	}
	return false
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// parseCount parses a non-negative integer, falling back to 0.
func parseCount(s string) uint {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0
	}
	return uint(n)
}
