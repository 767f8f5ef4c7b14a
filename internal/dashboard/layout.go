package dashboard

// Profile selects which columns are shown as the width budget shrinks.
type Profile int

const (
	// ProfileNarrow shows name, state, and the four counters.
	ProfileNarrow Profile = iota
	// ProfileMedium adds uptime.
	ProfileMedium
	// ProfileFull adds the capacity columns.
	ProfileFull
)

// Width breakpoints between profiles.
const (
	BreakpointMedium = 80
	BreakpointFull   = 100
)

// Name column bounds.
const (
	NameMin = 10
	NameMax = 28
)

// Fixed column widths. Sized for their widest expected value
// ("unknown", "1023.9KB", uptime like "12d23h").
const (
	colState     = 7
	colPending   = 4
	colActive    = 4
	colIngress   = 8
	colEgress    = 8
	colUptime    = 7
	colMaxConns  = 5
	colBandwidth = 7
)

// Layout is the computed column plan for one frame. Every row rendered
// under a layout has exactly RowWidth characters; overflowing fields are
// truncated, never wrapped.
type Layout struct {
	Budget  int
	Profile Profile

	// Column widths; zero means the column is hidden in this profile.
	Name      int
	State     int
	Pending   int
	Active    int
	Ingress   int
	Egress    int
	Uptime    int
	MaxConns  int
	Bandwidth int
}

// ComputeLayout builds the column plan for a width budget. The name
// column absorbs the slack between the fixed columns and the budget,
// clamped to sane bounds; the row never exceeds the budget even when the
// budget is too tight for the preferred minimum.
func ComputeLayout(budget int) Layout {
	l := Layout{
		Budget:  budget,
		State:   colState,
		Pending: colPending,
		Active:  colActive,
		Ingress: colIngress,
		Egress:  colEgress,
	}

	switch {
	case budget >= BreakpointFull:
		l.Profile = ProfileFull
		l.Uptime = colUptime
		l.MaxConns = colMaxConns
		l.Bandwidth = colBandwidth
	case budget >= BreakpointMedium:
		l.Profile = ProfileMedium
		l.Uptime = colUptime
	default:
		l.Profile = ProfileNarrow
	}

	avail := budget - l.fixed() - l.gaps()
	name := avail
	if name > NameMax {
		name = NameMax
	}
	if name < NameMin && avail >= NameMin {
		name = NameMin
	}
	if name < 1 {
		name = 1
	}
	l.Name = name

	return l
}

// RowWidth is the exact width of every rendered row.
func (l Layout) RowWidth() int {
	return l.Name + l.fixed() + l.gaps()
}

// columns returns the visible column widths in render order, name first.
func (l Layout) columns() []int {
	cols := []int{l.Name, l.State, l.Pending, l.Active, l.Ingress, l.Egress}
	if l.Uptime > 0 {
		cols = append(cols, l.Uptime)
	}
	if l.MaxConns > 0 {
		cols = append(cols, l.MaxConns)
	}
	if l.Bandwidth > 0 {
		cols = append(cols, l.Bandwidth)
	}
	return cols
}

// fixed sums the visible fixed-width columns.
func (l Layout) fixed() int {
	total := l.State + l.Pending + l.Active + l.Ingress + l.Egress
	total += l.Uptime + l.MaxConns + l.Bandwidth
	return total
}

// gaps is the count of single-space separators between visible columns.
func (l Layout) gaps() int {
	n := 5 // name|state|pend|act|in|out
	if l.Uptime > 0 {
		n++
	}
	if l.MaxConns > 0 {
		n++
	}
	if l.Bandwidth > 0 {
		n++
	}
	return n
}
