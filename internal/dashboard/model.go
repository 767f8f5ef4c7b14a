package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/babakskr/Conduit-console/internal/collect"
	"github.com/babakskr/Conduit-console/internal/config"
	"github.com/babakskr/Conduit-console/internal/netrate"
)

// pollInterval is the foreground tick. The loop never blocks longer than
// this, keeping keystrokes responsive while collection is in flight.
const pollInterval = 80 * time.Millisecond

// tickMsg drives the foreground poll.
type tickMsg time.Time

// cycleDoneMsg reports that a snapshot+render worker finished. The frame
// itself travels through the cell; the message carries the snapshot so
// mode changes can re-render it without a fresh collection.
type cycleDoneMsg struct {
	snap *collect.Snapshot
}

// Model is the Bubble Tea model for the dashboard. The foreground loop
// owns only the reference to the last adopted frame; snapshot contents
// are never mutated after publication.
type Model struct {
	cfg     config.Config
	orch    *collect.Orchestrator
	sampler *netrate.Sampler
	styles  Styles
	cell    *Cell

	adopted *Frame
	// snap is the newest completed snapshot; shown is the snapshot the
	// adopted frame was built from. They diverge only while paused.
	snap  *collect.Snapshot
	shown *collect.Snapshot

	filter  ViewFilter
	compact bool
	paused  bool

	width      int
	collecting bool
	refreshNow bool
	lastCycle  time.Time

	cancelCycle context.CancelFunc
	workerDone  chan struct{}

	spin     spinner.Model
	quitting bool
}

// NewModel creates the dashboard model. initialWidth is the terminal
// width read before the program starts; the window-size message
// corrects it once the TUI is running.
func NewModel(cfg config.Config, orch *collect.Orchestrator, sampler *netrate.Sampler, initialWidth int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		cfg:        cfg,
		orch:       orch,
		sampler:    sampler,
		styles:     NewStyles(),
		cell:       &Cell{},
		width:      initialWidth,
		refreshNow: true,
		spin:       sp,
	}
}

// Init starts the NIC sampler and the foreground tick. The first tick
// fires immediately so the initial collection starts without waiting a
// full poll interval.
func (m Model) Init() tea.Cmd {
	m.sampler.Start()
	return tea.Batch(
		func() tea.Msg { return tickMsg(time.Now()) },
		m.spin.Tick,
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.rerender()
		return m, nil

	case tickMsg:
		var cmd tea.Cmd
		m, cmd = m.maybeLaunchCycle()
		return m, tea.Batch(m.tickCmd(), cmd)

	case cycleDoneMsg:
		m.collecting = false
		m.workerDone = nil
		m.cancelCycle = nil
		m.snap = msg.snap
		if !m.paused {
			m.adoptLatest()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the adopted frame; the frame body is prebuilt by the
// background worker, so this stays cheap.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.adopted == nil {
		return m.spin.View() + " collecting first snapshot..."
	}
	return m.adopted.Body
}

// tickCmd schedules the next foreground poll.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// maybeLaunchCycle starts a snapshot+render worker when one is due and
// none is in flight. Workers are never stacked. Collection continues
// while paused so resume is instantaneous.
func (m Model) maybeLaunchCycle() (Model, tea.Cmd) {
	if m.collecting {
		return m, nil
	}
	due := m.refreshNow || m.lastCycle.IsZero() || time.Since(m.lastCycle) >= m.cfg.Refresh
	if !due {
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	m.collecting = true
	m.refreshNow = false
	m.lastCycle = time.Now()
	m.cancelCycle = cancel
	m.workerDone = done

	// Capture the cycle's inputs now: an immutable options snapshot per
	// cycle avoids read skew if the operator changes mode mid-collection.
	orch, sampler, cell, styles := m.orch, m.sampler, m.cell, m.styles
	opts := m.renderOptions()

	return m, func() tea.Msg {
		defer close(done)
		snap := orch.Snapshot(ctx)
		snap.NIC = sampler.Rate()
		snap.Mem = netrate.ReadMemory()
		cell.Publish(RenderFrame(snap, opts, styles))
		return cycleDoneMsg{snap: snap}
	}
}

// adoptLatest swaps in the newest published frame. Frames whose
// generation does not exceed the adopted one are rejected. A frame
// rendered under a pause state that no longer applies is rebuilt so the
// header matches the loop's actual state.
func (m *Model) adoptLatest() {
	f := m.cell.Latest()
	if f == nil {
		return
	}
	if m.adopted != nil && f.Generation <= m.adopted.Generation {
		return
	}
	m.adopted = f
	if m.snap != nil && m.snap.Generation == f.Generation {
		m.shown = m.snap
	}
	if f.Paused != m.paused {
		m.rerender()
	}
}

// rerender redraws the shown snapshot under the current mode without
// waiting for a fresh collection. Same data, new layout. While paused
// this keeps the frozen generation on screen; the newest snapshot is
// only picked up through adoption.
func (m *Model) rerender() {
	if m.shown == nil {
		return
	}
	m.adopted = RenderFrame(m.shown, m.renderOptions(), m.styles)
}

// renderOptions captures the current view mode.
func (m Model) renderOptions() RenderOptions {
	width := m.width
	if width <= 0 || width > m.cfg.MaxWidth {
		width = m.cfg.MaxWidth
	}
	return RenderOptions{
		Width:     width,
		Filter:    m.filter,
		Compact:   m.compact,
		Paused:    m.paused,
		Interface: m.cfg.Interface,
	}
}

// shutdown stops background work before the terminal is restored: cancel
// any in-flight worker, wait for it, then join the sampler.
func (m *Model) shutdown() {
	if m.cancelCycle != nil {
		m.cancelCycle()
	}
	if m.collecting && m.workerDone != nil {
		<-m.workerDone
	}
	m.sampler.Stop()
}
