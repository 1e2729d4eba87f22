package setup

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/vitrine-cms/vitrine-setup/internal/installer"
)

const welcomeMarkdown = `# Welcome to Vitrine

This wizard sets up a fresh Vitrine site in four short steps:

1. **Application** — site name, company and timezone
2. **Administrator** — the first admin account
3. **Database** — PostgreSQL connection, verified before anything is written
4. **Finish** — the installer provisions the schema and opens your new site

Nothing is written until the final step. You can go back at any point
before that to revise what you entered.
`

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCrumbs())
	b.WriteString("\n\n")

	var body string
	switch m.Session.Step() {
	case installer.StepWelcome:
		body = m.renderWelcome()
	case installer.StepApplication, installer.StepAdmin:
		body = m.renderForm()
	case installer.StepDatabase:
		body = m.renderDatabase()
	case installer.StepComplete:
		body = m.renderComplete()
	}
	b.WriteString(bodyStyle.Render(body))
	b.WriteString("\n")

	if m.banner != "" {
		if m.bannerError {
			b.WriteString(errorStyle.Render(m.banner))
		} else {
			b.WriteString(successStyle.Render(m.banner))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return m.fitWidth(b.String())
}

func (m Model) renderHeader() string {
	return headerStyle.Render("VITRINE SETUP — " + m.Session.Step().Title())
}

// renderCrumbs draws the step breadcrumb: done, current, pending.
func (m Model) renderCrumbs() string {
	current := m.Session.Step()
	parts := make([]string, 0, len(installer.Steps()))
	for _, step := range installer.Steps() {
		label := step.Title()
		switch {
		case step < current:
			parts = append(parts, crumbDoneStyle.Render("✓ "+label))
		case step == current:
			parts = append(parts, crumbCurrentStyle.Render("▸ "+label))
		default:
			parts = append(parts, crumbPendingStyle.Render("  "+label))
		}
	}
	return strings.Join(parts, subtleStyle.Render("  ·  "))
}

func (m Model) renderWelcome() string {
	width := m.Width - 8
	if width < 40 || width > 76 {
		width = 76
	}
	out := welcomeMarkdown
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if rendered, rerr := renderer.Render(welcomeMarkdown); rerr == nil {
			out = rendered
		}
	}
	return strings.TrimRight(out, "\n") + "\n\n" + subtleStyle.Render("Press enter to begin, q to quit.")
}

// renderForm draws the Application and Administrator steps.
func (m Model) renderForm() string {
	var b strings.Builder
	for i, input := range m.inputs {
		b.WriteString(labelStyle.Render(input.Placeholder))
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n")
		if i < len(m.inputs)-1 {
			b.WriteString("\n")
		}
	}

	if m.Session.Step() == installer.StepApplication {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Timezone"))
		b.WriteString("\n")
		tz := installer.Timezones[m.tzIndex]
		selector := fmt.Sprintf("◀ %s ▶", tz)
		if m.tzFocused() {
			b.WriteString(crumbCurrentStyle.Render(selector))
			b.WriteString(subtleStyle.Render("  (←/→ to change)"))
		} else {
			b.WriteString(selector)
		}
		b.WriteString("\n")
	}

	if m.Session.Step() == installer.StepAdmin {
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render(fmt.Sprintf("Password must be at least %d characters and match its confirmation.", installer.MinPasswordLength)))
		b.WriteString("\n")
	}

	return b.String()
}

// renderDatabase draws the connection form plus the probe verdict line.
func (m Model) renderDatabase() string {
	var b strings.Builder
	b.WriteString(m.renderForm())
	b.WriteString("\n")

	if m.Session.ProbeInFlight() {
		b.WriteString(m.spinner.View())
		b.WriteString(" testing connection…")
	} else {
		b.WriteString(formatProbe(m.Session.Validation(installer.GroupDatabase)))
	}
	b.WriteString("\n")
	return b.String()
}

// renderComplete draws the terminal step in its three commit outcomes.
func (m Model) renderComplete() string {
	var b strings.Builder

	switch m.Session.Commit() {
	case installer.CommitPending:
		b.WriteString(m.spinner.View())
		b.WriteString(" Installing…\n\n")
		b.WriteString(subtleStyle.Render("Provisioning the database schema and creating the admin account."))

	case installer.CommitSucceeded:
		b.WriteString(successStyle.Render("✓ Installation complete"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("Your site is ready. Opening %s shortly…", titleStyle.Render(m.SiteURL)))

	case installer.CommitFailed:
		b.WriteString(errorStyle.Render("✗ Installation failed"))
		b.WriteString("\n\n")
		if msg := m.Session.CommitError(); msg != "" {
			b.WriteString(msg)
			b.WriteString("\n\n")
		}
		b.WriteString(subtleStyle.Render("Press r to start over (your answers are kept), or esc to go back."))

	default:
		b.WriteString(subtleStyle.Render("Waiting…"))
	}

	b.WriteString("\n")
	return b.String()
}

// renderFooter lists the controls, dimming the ones the session disables.
func (m Model) renderFooter() string {
	type control struct {
		hint    string
		enabled bool
	}

	var controls []control
	switch m.Session.Step() {
	case installer.StepWelcome:
		controls = []control{
			{"enter:begin", true},
			{"q:quit", true},
		}
	case installer.StepDatabase:
		controls = []control{
			{"ctrl+t:test connection", m.Session.CanProbe()},
			{"enter:install", m.Session.CanContinue()},
			{"esc:back", m.Session.CanBack()},
			{"tab:next field", true},
		}
	case installer.StepComplete:
		controls = []control{
			{"r:start over", m.Session.Commit() == installer.CommitFailed && !m.Session.Busy()},
			{"esc:back", m.Session.CanBack()},
			{"q:quit", !m.Session.CommitInFlight()},
		}
	default:
		controls = []control{
			{"enter:continue", m.Session.CanContinue()},
			{"esc:back", m.Session.CanBack()},
			{"tab:next field", true},
		}
	}

	parts := make([]string, 0, len(controls))
	for _, c := range controls {
		if c.enabled {
			parts = append(parts, helpStyle.Render(c.hint))
		} else {
			parts = append(parts, disabledControlStyle.Render(c.hint))
		}
	}
	return " " + strings.Join(parts, "  ")
}

// fitWidth truncates each rendered line to the terminal width, preserving
// ANSI sequences.
func (m Model) fitWidth(s string) string {
	if m.Width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if lipgloss.Width(line) > m.Width {
			lines[i] = ansi.Truncate(line, m.Width, "…")
		}
	}
	return strings.Join(lines, "\n")
}
