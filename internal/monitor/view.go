package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/ohmytoolbox/tbx/internal/telemetry"
	"github.com/ohmytoolbox/tbx/internal/telemetry/parsers"
	"github.com/ohmytoolbox/tbx/internal/ui"
)

// renderDashboard composes the full dashboard frame.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderMetrics())
	b.WriteString("\n")
	b.WriteString(m.renderSnapshot())
	b.WriteString("\n")
	b.WriteString(m.renderProcesses())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader shows the selected device, sampling state and data age.
func (m Model) renderHeader() string {
	title := ui.HeaderStyle.Render("tbx monitor")

	var deviceLine string
	if dev, ok := m.registry.Selected(); ok {
		glyph := ui.StatusConnected
		if dev.Status != "device" && dev.Status != "" {
			glyph = ui.StatusBusy
		}
		deviceLine = ui.ValueStyle.Render(glyph+" "+dev.ID) +
			ui.MutedStyle.Render(" ("+m.registry.Family().Name+")")
	} else {
		deviceLine = ui.ErrorStyle.Render(ui.StatusOffline + " no device selected")
	}

	state := ui.MutedStyle.Render("paused")
	if m.sampler.Enabled() {
		state = ui.LabelStyle.Render("sampling")
	}

	age := ""
	if last := m.sampler.LastPass(); !last.IsZero() {
		age = ui.MutedStyle.Render("updated " + humanize.Time(last))
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", deviceLine, "  ", state, "  ", age)
	if m.lastErr != "" {
		line += "\n" + ui.ErrorStyle.Render("✗ "+m.lastErr)
	}
	return line
}

// renderMetrics draws one sparkline row per tracked metric.
func (m Model) renderMetrics() string {
	width := m.sparkWidth()

	rows := []string{
		m.metricRow("load", telemetry.MetricCPULoad, width, func(v float64) string {
			return fmt.Sprintf("%5.2f", v)
		}),
		m.metricRow("mem", telemetry.MetricMemoryUsage, width, func(v float64) string {
			return fmt.Sprintf("%4.1f%%", v)
		}),
		m.metricRow("batt", telemetry.MetricBatteryLevel, width, func(v float64) string {
			return fmt.Sprintf("%4.0f%%", v)
		}),
		m.metricRow("temp", telemetry.MetricBatteryTemp, width, func(v float64) string {
			return fmt.Sprintf("%4.1f°C", v)
		}),
	}

	return strings.Join(rows, "\n")
}

// metricRow renders "label  value  sparkline" for one metric.
func (m Model) metricRow(label string, metric telemetry.Metric, width int, format func(float64) string) string {
	values := m.store.Values(metric, width)

	value := "   --"
	if latest, ok := m.store.Latest(metric); ok {
		value = format(latest.Value)
	}

	spark := ui.ColoredSparkline(values, width, ui.ColorGraph)
	if spark == "" {
		spark = ui.MutedStyle.Render(strings.Repeat("·", width))
	}

	return ui.LabelStyle.Render(fmt.Sprintf("%-5s", label)) + " " +
		ui.ValueStyle.Render(fmt.Sprintf("%8s", value)) + " " + spark
}

// renderSnapshot shows the latest battery, thermal and network readings.
func (m Model) renderSnapshot() string {
	snap := m.sampler.Snapshot()

	var parts []string

	if snap.BatteryOK {
		batt := snap.Battery
		parts = append(parts,
			ui.LabelStyle.Render("battery ")+
				ui.MetricStyle(batt.Level).Render(fmt.Sprintf("%.0f%%", batt.Level))+
				ui.MutedStyle.Render(fmt.Sprintf(" %.1f°C %.2fV %s/%s via %s",
					batt.Temperature, batt.Voltage, batt.Status, batt.Health, batt.PowerSource())))
	}

	if snap.ThermalOK {
		parts = append(parts,
			ui.LabelStyle.Render("soc     ")+
				ui.ValueStyle.Render(fmt.Sprintf("%.1f°C", snap.ThermalC)))
	}

	if len(snap.Network) > 0 {
		var rx, tx int64
		for _, iface := range snap.Network {
			if iface.Name == "lo" {
				continue
			}
			rx += iface.RxBytes
			tx += iface.TxBytes
		}
		parts = append(parts,
			ui.LabelStyle.Render("net     ")+
				ui.ValueStyle.Render("▼ "+parsers.FormatBytes(rx))+
				ui.MutedStyle.Render("  ")+
				ui.ValueStyle.Render("▲ "+parsers.FormatBytes(tx)))
	}

	if len(parts) == 0 {
		return ui.MutedStyle.Render("waiting for first sample...")
	}
	return strings.Join(parts, "\n")
}

// renderProcesses draws the scrollable process panel.
func (m Model) renderProcesses() string {
	if !m.viewportReady {
		return ""
	}

	style := ui.PanelStyle
	if m.focus == PaneProcesses {
		style = ui.PanelActiveStyle
	}

	title := ui.TitleStyle.Render("processes")
	count := len(m.sampler.Snapshot().Processes)
	if count > 0 {
		title += ui.MutedStyle.Render(fmt.Sprintf(" (%d)", count))
	}

	return style.Width(m.procView.Width + 2).Render(title + "\n" + m.procView.View())
}

// updateProcessPane rebuilds the viewport content from the latest snapshot.
func (m *Model) updateProcessPane() {
	if !m.viewportReady {
		return
	}

	procs := m.sampler.Snapshot().Processes
	if len(procs) == 0 {
		m.procView.SetContent(ui.MutedStyle.Render("no process data"))
		return
	}

	var b strings.Builder
	b.WriteString(ui.MutedStyle.Render(fmt.Sprintf("%7s %-10s %6s %10s %2s %s",
		"PID", "USER", "%CPU", "RSS", "S", "NAME")))
	b.WriteString("\n")
	for _, p := range procs {
		b.WriteString(fmt.Sprintf("%7d %-10s %6.1f %10s %2s %s\n",
			p.PID, p.User, p.CPUPercent, parsers.FormatBytes(p.MemoryKB*1024), p.State, p.Name))
	}
	m.procView.SetContent(b.String())
}

// renderFooter shows the key help line.
func (m Model) renderFooter() string {
	help := fmt.Sprintf("s sample  c clear  r refresh  [/] history (%d)  tab pane  q quit", m.history)
	return ui.FooterStyle.Render(help)
}

// sparkWidth returns the sparkline column width for the current terminal.
func (m Model) sparkWidth() int {
	w := m.width - 18
	if w < 10 {
		w = 10
	}
	if w > 120 {
		w = 120
	}
	return w
}
