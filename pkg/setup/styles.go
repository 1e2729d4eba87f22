package setup

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vitrine-cms/vitrine-setup/internal/installer"
)

var (
	// Base colors
	primaryColor = lipgloss.Color("212")
	mutedColor   = lipgloss.Color("241")
	successColor = lipgloss.Color("42")
	errorColor   = lipgloss.Color("196")

	// Header and breadcrumb
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	crumbDoneStyle    = lipgloss.NewStyle().Foreground(successColor)
	crumbCurrentStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	crumbPendingStyle = lipgloss.NewStyle().Foreground(mutedColor)

	// Text styles
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	successStyle = lipgloss.NewStyle().Foreground(successColor)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor)

	spinnerStyle = lipgloss.NewStyle().Foreground(primaryColor)

	// Probe verdict badges
	probeStyles = map[installer.TriState]lipgloss.Style{
		installer.Untested: lipgloss.NewStyle().Foreground(mutedColor),
		installer.Passed:   lipgloss.NewStyle().Foreground(successColor).Bold(true),
		installer.Failed:   lipgloss.NewStyle().Foreground(errorColor).Bold(true),
	}

	// Body frame around the step content
	bodyStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	// Disabled control hint in the footer
	disabledControlStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// formatProbe renders the probe verdict badge for the database step.
func formatProbe(t installer.TriState) string {
	style, ok := probeStyles[t]
	if !ok {
		return t.String()
	}
	switch t {
	case installer.Passed:
		return style.Render("✓ connection verified")
	case installer.Failed:
		return style.Render("✗ connection failed")
	default:
		return style.Render("○ untested")
	}
}
