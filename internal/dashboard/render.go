package dashboard

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/babakskr/Conduit-console/internal/collect"
	"github.com/babakskr/Conduit-console/internal/instance"
	"github.com/babakskr/Conduit-console/internal/stats"
	"github.com/babakskr/Conduit-console/internal/util"
)

// ViewFilter selects which population's rows are rendered.
type ViewFilter int

const (
	FilterAll ViewFilter = iota
	FilterDocker
	FilterNative
)

// String returns the filter label shown in the header.
func (f ViewFilter) String() string {
	switch f {
	case FilterDocker:
		return "docker"
	case FilterNative:
		return "native"
	default:
		return "all"
	}
}

// Next cycles to the following filter.
func (f ViewFilter) Next() ViewFilter {
	switch f {
	case FilterAll:
		return FilterDocker
	case FilterDocker:
		return FilterNative
	default:
		return FilterAll
	}
}

// admits reports whether rows of population p are rendered under f.
func (f ViewFilter) admits(p instance.Population) bool {
	switch f {
	case FilterDocker:
		return p == instance.PopulationDocker
	case FilterNative:
		return p == instance.PopulationNative
	default:
		return true
	}
}

// RenderOptions captures the view mode a frame is built under. The worker
// copies the options at launch so a mid-cycle key press cannot skew one
// frame's rendering.
type RenderOptions struct {
	Width     int
	Filter    ViewFilter
	Compact   bool
	Paused    bool
	Interface string
}

// barMetrics are the aggregate comparison bars, in render order.
var barMetrics = []string{"pend", "act", "in", "out"}

// RenderFrame builds one immutable frame from a snapshot. Pure string
// construction; no terminal I/O.
func RenderFrame(snap *collect.Snapshot, opts RenderOptions, st Styles) *Frame {
	layout := ComputeLayout(opts.Width)
	var b strings.Builder

	writeLine(&b, opts.Width, st.Title, headerLine(snap, opts))
	writeLine(&b, opts.Width, st.Legend, statusLine(snap, opts))
	writeLine(&b, opts.Width, st.Summary, summaryLine(snap, opts))
	b.WriteByte('\n')

	renderBars(&b, snap, opts, st)

	if !opts.Compact {
		b.WriteByte('\n')
		b.WriteString(renderTable(snap, layout, opts, st))
	}

	b.WriteByte('\n')
	writeLine(&b, opts.Width, st.Footer, "q quit  p pause  v view  c compact  r refresh")

	return &Frame{
		Generation: snap.Generation,
		Body:       b.String(),
		Taken:      snap.Taken,
		Paused:     opts.Paused,
	}
}

// headerLine is the title plus current mode.
func headerLine(snap *collect.Snapshot, opts RenderOptions) string {
	line := fmt.Sprintf("conduit console  [%s]  gen %d", opts.Filter, snap.Generation)
	if opts.Compact {
		line += "  compact"
	}
	if opts.Paused {
		line += "  PAUSED"
	}
	return line
}

// statusLine reports population counts and any cycle warnings.
func statusLine(snap *collect.Snapshot, opts RenderOptions) string {
	docker := snap.Count(instance.PopulationDocker)
	native := snap.Count(instance.PopulationNative)
	line := fmt.Sprintf("Docker=%d Native=%d All=%d", docker, native, docker+native)

	if opts.Paused {
		line += "  data " + ageLabel(snap.Taken)
	}
	if len(snap.Warnings) > 0 {
		line += "  ! " + util.JoinOrDefault(snap.Warnings, "")
	}
	return line
}

// summaryLine is the NIC throughput and host memory readout.
func summaryLine(snap *collect.Snapshot, opts RenderOptions) string {
	iface := opts.Interface
	if iface == "" {
		iface = "all"
	}

	memPart := "mem -"
	if snap.Mem.TotalBytes > 0 {
		memPart = fmt.Sprintf("mem %s / %s",
			humanize.IBytes(snap.Mem.UsedBytes), humanize.IBytes(snap.Mem.TotalBytes))
	}

	return fmt.Sprintf("net %s  rx %.2f Mb/s  tx %.2f Mb/s   %s",
		iface, snap.NIC.RxMbps, snap.NIC.TxMbps, memPart)
}

// renderBars writes one docker-versus-native comparison bar per metric.
func renderBars(b *strings.Builder, snap *collect.Snapshot, opts RenderOptions, st Styles) {
	docker := snap.Totals[instance.PopulationDocker]
	native := snap.Totals[instance.PopulationNative]

	values := map[string][2]uint64{
		"pend": {uint64(docker.Pending), uint64(native.Pending)},
		"act":  {uint64(docker.Active), uint64(native.Active)},
		"in":   {docker.IngressBytes, native.IngressBytes},
		"out":  {docker.EgressBytes, native.EgressBytes},
	}

	width := barWidth(opts.Width)
	for _, metric := range barMetrics {
		v := values[metric]
		b.WriteString(clampLine(renderBar(metric, v[0], v[1], width, st), opts.Width))
		b.WriteByte('\n')
	}
}

// barWidth sizes the bar so the full line stays inside the budget.
func barWidth(budget int) int {
	w := budget - 30
	if w > 24 {
		w = 24
	}
	if w < 8 {
		w = 8
	}
	return w
}

// renderBar draws one metric's bar: the docker share filled, the native
// share shaded, against their combined total.
func renderBar(metric string, docker, native uint64, width int, st Styles) string {
	total := docker + native

	dockerCells := 0
	if total > 0 {
		dockerCells = int(float64(width)*float64(docker)/float64(total) + 0.5)
		if dockerCells > width {
			dockerCells = width
		}
	}

	bar := st.BarDocker.Render(strings.Repeat("#", dockerCells)) +
		st.BarNative.Render(strings.Repeat("-", width-dockerCells))

	var dval, nval string
	if metric == "in" || metric == "out" {
		dval, nval = stats.FormatBytes(docker), stats.FormatBytes(native)
	} else {
		dval, nval = strconv.FormatUint(docker, 10), strconv.FormatUint(native, 10)
	}

	return fmt.Sprintf("%s [%s] D %s  N %s", util.Pad(metric, 4), bar, dval, nval)
}

// renderTable writes the column header and one row per instance passing
// the view filter.
func renderTable(snap *collect.Snapshot, layout Layout, opts RenderOptions, st Styles) string {
	var b strings.Builder

	b.WriteString(clampLine(st.Header.Render(tableHeader(layout)), opts.Width))
	b.WriteByte('\n')

	shown := 0
	for _, row := range snap.Rows {
		if !opts.Filter.admits(row.Population) {
			continue
		}
		b.WriteString(clampLine(renderRow(row, layout, st), opts.Width))
		b.WriteByte('\n')
		shown++
	}

	if shown == 0 {
		b.WriteString(clampLine(st.Stale.Render("(no instances)"), opts.Width))
		b.WriteByte('\n')
	}

	return b.String()
}

// tableHeader renders the padded column titles.
func tableHeader(l Layout) string {
	cells := []string{
		util.Pad("NAME", l.Name),
		util.Pad("STATE", l.State),
		util.PadLeft("PEND", l.Pending),
		util.PadLeft("ACT", l.Active),
		util.PadLeft("UP", l.Ingress),
		util.PadLeft("DOWN", l.Egress),
	}
	if l.Uptime > 0 {
		cells = append(cells, util.Pad("UPTIME", l.Uptime))
	}
	if l.MaxConns > 0 {
		cells = append(cells, util.PadLeft("MAXC", l.MaxConns))
	}
	if l.Bandwidth > 0 {
		cells = append(cells, util.Pad("BW", l.Bandwidth))
	}
	return strings.Join(cells, " ")
}

// renderRow renders one instance at exactly the layout's row width. The
// population shows as a one-character marker on the name.
func renderRow(r collect.Row, l Layout, st Styles) string {
	marker := "N"
	if r.Population == instance.PopulationDocker {
		marker = "D"
	}

	name := marker + ":" + r.Identity
	state := r.State.String()
	if r.Stale {
		state += "*"
	}

	cells := []string{
		util.Pad(name, l.Name),
		stateStyle(r, st).Render(util.Pad(state, l.State)),
		util.PadLeft(strconv.FormatUint(uint64(r.Pending), 10), l.Pending),
		util.PadLeft(strconv.FormatUint(uint64(r.Active), 10), l.Active),
		util.PadLeft(stats.FormatBytes(r.IngressBytes), l.Ingress),
		util.PadLeft(stats.FormatBytes(r.EgressBytes), l.Egress),
	}
	if l.Uptime > 0 {
		cells = append(cells, util.Pad(r.Uptime, l.Uptime))
	}
	if l.MaxConns > 0 {
		cells = append(cells, util.PadLeft(r.MaxConns, l.MaxConns))
	}
	if l.Bandwidth > 0 {
		cells = append(cells, util.Pad(r.Bandwidth, l.Bandwidth))
	}

	return strings.Join(cells, " ")
}

// stateStyle picks the color for a row's state cell.
func stateStyle(r collect.Row, st Styles) lipgloss.Style {
	switch r.State {
	case instance.StateOK:
		return st.StateOK
	case instance.StateIdle:
		return st.StateIdle
	case instance.StateUnknown:
		return st.Stale
	default:
		return st.StateDown
	}
}

// clampLine cuts a styled line down to the width budget. Rows and bars
// carry escape sequences mid-line, so the cut has to be ANSI-aware.
func clampLine(line string, width int) string {
	if ansi.StringWidth(line) <= width {
		return line
	}
	return ansi.Truncate(line, width, "~")
}

// writeLine truncates a plain line to the width budget, styles it, and
// appends it with a newline.
func writeLine(b *strings.Builder, width int, style lipgloss.Style, line string) {
	b.WriteString(style.Render(util.Truncate(line, width)))
	b.WriteByte('\n')
}

// ageLabel renders how old a snapshot is, shown while paused so the
// operator knows the displayed data is frozen.
func ageLabel(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%ds ago", int(time.Since(t).Seconds()))
}
