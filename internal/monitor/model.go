// Package monitor implements the live telemetry dashboard for the selected
// device: sparkline history per metric, battery and thermal readings, and a
// scrollable process list.
package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ohmytoolbox/tbx/internal/device"
	"github.com/ohmytoolbox/tbx/internal/telemetry"
)

// Pane identifies the focused dashboard region.
type Pane int

const (
	PaneMetrics Pane = iota
	PaneProcesses
)

// redrawInterval is the UI frame rate. Sampling is gated separately inside
// the sampler, so redraw can run much faster than collection.
const redrawInterval = 250 * time.Millisecond

// samplePassTimeout bounds one full collection pass over the device.
const samplePassTimeout = 8 * time.Second

// History capacity bounds for the [ and ] keys.
const (
	historyStep = 30
	historyMin  = 30
	historyMax  = 600
)

// Model is the Bubble Tea model for the telemetry dashboard.
type Model struct {
	registry *device.Registry
	sampler  *telemetry.Sampler
	store    *telemetry.Store

	width   int
	height  int
	focus   Pane
	history int

	refreshing bool
	sampling   bool // a collection pass is in flight
	lastErr    string
	quitting   bool

	procView      viewport.Model
	viewportReady bool
}

// tickMsg signals a redraw frame.
type tickMsg time.Time

// refreshDoneMsg carries the result of a device registry refresh.
type refreshDoneMsg struct {
	err error
}

// sampleDoneMsg signals that a collection pass finished.
type sampleDoneMsg struct{}

// NewModel creates a dashboard model. The store must be the one the
// sampler writes to.
func NewModel(registry *device.Registry, sampler *telemetry.Sampler, store *telemetry.Store) Model {
	history := store.Capacity()
	return Model{
		registry: registry,
		sampler:  sampler,
		store:    store,
		history:  history,
	}
}

// Init starts the redraw timer and triggers an initial device refresh.
// Sampling starts armed so the dashboard is live immediately.
func (m Model) Init() tea.Cmd {
	m.sampler.Enable()
	return tea.Batch(m.tickCmd(), m.refreshCmd())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.handleKey(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()

	case tickMsg:
		cmds := []tea.Cmd{m.tickCmd()}
		if !m.sampling {
			cmds = append(cmds, m.sampleCmd())
		}
		return m, tea.Batch(cmds...)

	case sampleDoneMsg:
		m.sampling = false
		m.updateProcessPane()

	case refreshDoneMsg:
		m.refreshing = false
		if msg.err != nil {
			m.lastErr = msg.err.Error()
		} else {
			m.lastErr = ""
		}
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

// tickCmd returns a command that sends a redraw tick.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(redrawInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// sampleCmd runs one sampler tick off the update loop. The sampler's
// interval gate makes most of these calls no-ops.
func (m *Model) sampleCmd() tea.Cmd {
	serial := m.registry.SelectedID()
	m.sampling = true
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), samplePassTimeout)
		defer cancel()
		m.sampler.Tick(ctx, serial)
		return sampleDoneMsg{}
	}
}

// refreshCmd re-lists devices in the background.
func (m *Model) refreshCmd() tea.Cmd {
	m.refreshing = true
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), samplePassTimeout)
		defer cancel()
		_, err := m.registry.Refresh(ctx)
		return refreshDoneMsg{err: err}
	}
}

// resizeViewport fits the process viewport to the current window,
// reserving room for the header, metric rows and footer.
func (m *Model) resizeViewport() {
	reserved := 16
	h := m.height - reserved
	if h < 3 {
		h = 3
	}
	w := m.width - 4
	if w < 10 {
		w = 10
	}

	if !m.viewportReady {
		m.procView = viewport.New(w, h)
		m.viewportReady = true
	} else {
		m.procView.Width = w
		m.procView.Height = h
	}
	m.updateProcessPane()
}

// Run starts the dashboard in the alternate screen and blocks until quit.
func Run(registry *device.Registry, sampler *telemetry.Sampler, store *telemetry.Store) error {
	p := tea.NewProgram(NewModel(registry, sampler, store), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
