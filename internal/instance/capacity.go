package instance

import "strings"

// Capacity holds the configured limits recovered from an instance's
// command line. Fields default to "-" when the flag is absent, which is
// also how the dashboard renders them.
type Capacity struct {
	MaxConns  string
	Bandwidth string
}

// NoCapacity is the placeholder for instances whose descriptor carries
// neither limit.
func NoCapacity() Capacity {
	return Capacity{MaxConns: "-", Bandwidth: "-"}
}

// ParseCapacity extracts -max-conns and -bw values from a descriptor
// string. Token scan with one fallback rule per field: a flag that is
// missing, at end of line, or followed by another flag yields "-".
// systemd's ExecStart wrapping ("{ path=... ; argv[]=... }") is tolerated
// because the scan only looks at flag/value token adjacency.
func ParseCapacity(descriptor string) Capacity {
	c := NoCapacity()
	tokens := strings.Fields(descriptor)

	for i, tok := range tokens {
		switch strings.TrimLeft(tok, "-") {
		case "max-conns", "max_conns":
			if v, ok := flagValue(tokens, i); ok {
				c.MaxConns = v
			}
		case "bw", "bandwidth":
			if v, ok := flagValue(tokens, i); ok {
				c.Bandwidth = v
			}
		}
	}
	return c
}

// flagValue returns the token following index i unless it looks like
// another flag or the line ends there.
func flagValue(tokens []string, i int) (string, bool) {
	if i+1 >= len(tokens) {
		return "", false
	}
	next := tokens[i+1]
	if next == "" || strings.HasPrefix(next, "-") || strings.Contains(next, "=") {
		return "", false
	}
	return next, true
}

// IsEmpty reports whether no capacity parameter was recovered.
func (c Capacity) IsEmpty() bool {
	return c.MaxConns == "-" && c.Bandwidth == "-"
}
