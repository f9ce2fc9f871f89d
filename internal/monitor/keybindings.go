package monitor

import tea "github.com/charmbracelet/bubbletea"

// Key bindings as constants for consistency.
const (
	KeyQuit           = "q"
	KeyQuitAlt        = "ctrl+c"
	KeyToggleSampling = "s"
	KeyClearHistory   = "c"
	KeyRefresh        = "r"
	KeyHistoryShrink  = "["
	KeyHistoryGrow    = "]"
	KeyCyclePane      = "tab"
)

// handleKey processes keyboard input. Returns true if the key was handled.
func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		return true, tea.Quit

	case KeyToggleSampling:
		if m.sampler.Enabled() {
			m.sampler.Disable()
		} else {
			m.sampler.Enable()
		}
		return true, nil

	case KeyClearHistory:
		m.sampler.Clear()
		m.updateProcessPane()
		return true, nil

	case KeyRefresh:
		if m.refreshing {
			return true, nil
		}
		return true, m.refreshCmd()

	case KeyHistoryShrink:
		m.history -= historyStep
		if m.history < historyMin {
			m.history = historyMin
		}
		m.store.SetCapacityAll(m.history)
		return true, nil

	case KeyHistoryGrow:
		m.history += historyStep
		if m.history > historyMax {
			m.history = historyMax
		}
		m.store.SetCapacityAll(m.history)
		return true, nil

	case KeyCyclePane:
		if m.focus == PaneMetrics {
			m.focus = PaneProcesses
		} else {
			m.focus = PaneMetrics
		}
		return true, nil
	}

	// Scrolling keys go to the process viewport when it has focus.
	if m.focus == PaneProcesses && m.viewportReady {
		switch key {
		case "up", "k", "down", "j", "pgup", "pgdown", "home", "end":
			var cmd tea.Cmd
			m.procView, cmd = m.procView.Update(msg)
			return true, cmd
		}
	}

	return false, nil
}
