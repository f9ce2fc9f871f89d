// Package ui holds the shared terminal styling for the monitor dashboard:
// the color palette, threshold-based metric coloring, progress bars and
// sparkline rendering.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Dashboard color palette.
const (
	ColorSurfaceBg = lipgloss.Color("#14141C")
	ColorBorder    = lipgloss.Color("#3A3A5C")

	// Semantic colors for metric severity.
	ColorHealthy  = lipgloss.Color("#4ADE80")
	ColorWarning  = lipgloss.Color("#FACC15")
	ColorCritical = lipgloss.Color("#F43F5E")

	ColorTextPrimary   = lipgloss.Color("#F5F5FA")
	ColorTextSecondary = lipgloss.Color("#B0B0CC")
	ColorTextMuted     = lipgloss.Color("#6E6E8F")

	ColorAccent = lipgloss.Color("#38BDF8")
	ColorGraph  = lipgloss.Color("#22D3EE")
)

// Severity thresholds for percentage metrics.
const (
	WarningThreshold  = 70.0
	CriticalThreshold = 90.0
)

// Base styles used across the dashboard.
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	PanelActiveStyle = PanelStyle.
				BorderForeground(ColorAccent)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorCritical)
)

// Device status glyphs.
const (
	StatusConnected = "◉"
	StatusOffline   = "◌"
	StatusBusy      = "◐"
)

// MetricColor returns the severity color for a percentage value.
// Green below 70, yellow 70-90, red above 90.
func MetricColor(percent float64) lipgloss.Color {
	switch {
	case percent >= CriticalThreshold:
		return ColorCritical
	case percent >= WarningThreshold:
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// MetricStyle returns a style with the severity color for the value.
func MetricStyle(percent float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(MetricColor(percent))
}

// ProgressBar renders a fixed-width bar colored by severity.
func ProgressBar(width int, percent float64) string {
	if width < 1 {
		width = 1
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
	return lipgloss.NewStyle().Foreground(MetricColor(percent)).Render(bar)
}
