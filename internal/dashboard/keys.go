package dashboard

import tea "github.com/charmbracelet/bubbletea"

// handleKey processes one keystroke. At most one key is consumed per
// poll; Bubble Tea delivers them individually.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		m.shutdown()
		return m, tea.Quit

	case "p":
		m.paused = !m.paused
		// Redraw under the new pause label, then, on resume, adopt the
		// newest generation that became ready while paused.
		m.rerender()
		if !m.paused {
			m.adoptLatest()
		}
		return m, nil

	case "v":
		m.filter = m.filter.Next()
		m.rerender()
		m.refreshNow = true
		return m, nil

	case "c":
		m.compact = !m.compact
		m.rerender()
		m.refreshNow = true
		return m, nil

	case "r":
		m.refreshNow = true
		return m, nil
	}

	return m, nil
}
