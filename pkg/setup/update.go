package setup

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitrine-cms/vitrine-setup/internal/installer"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ProbeResultMsg:
		m.Session.FinishProbe(msg.OK)
		switch {
		case m.Session.Validation(installer.GroupDatabase) == installer.Passed:
			m.setBanner("Database connection verified", false)
		case msg.OK:
			// The result was for values edited mid-probe and was discarded.
			m.setBanner("connection details changed during the test; test again", true)
		default:
			m.setBanner(msg.Message, true)
		}
		return m, nil

	case InstallResultMsg:
		m.Session.FinishCommit(msg.OK, msg.Message)
		if msg.OK && !m.redirectScheduled {
			m.redirectScheduled = true
			return m, redirectCmd()
		}
		return m, nil

	case redirectMsg:
		if m.OpenSite != nil {
			if err := m.OpenSite(m.SiteURL); err != nil {
				m.setBanner("could not open the site: "+err.Error(), true)
				return m, nil
			}
		}
		m.quitting = true
		return m, tea.Quit

	case spinner.TickMsg:
		if m.Session.Busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.Session.Step() {
	case installer.StepWelcome:
		return m.handleWelcomeKey(msg)
	case installer.StepComplete:
		return m.handleCompleteKey(msg)
	default:
		return m.handleFormKey(msg)
	}
}

func (m Model) handleWelcomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.advance()
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleCompleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the commit is in flight every control is inert.
	if m.Session.CommitInFlight() {
		return m, nil
	}

	switch msg.String() {
	case "r", "enter":
		if m.Session.Commit() == installer.CommitFailed && m.Session.StartOver() {
			m.clearBanner()
			m.redirectScheduled = false
			m.rebuildInputs()
		}
		return m, nil
	case "esc":
		return m.retreat()
	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleFormKey drives the Application, Admin and Database steps.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// Enter on any but the last slot moves focus forward, on the last
		// slot it attempts the step transition.
		if m.focus < m.fieldCount()-1 {
			return m.moveFocus(1), nil
		}
		return m.advance()

	case "tab", "down":
		return m.moveFocus(1), nil

	case "shift+tab", "up":
		return m.moveFocus(-1), nil

	case "esc":
		return m.retreat()

	case "ctrl+t":
		return m.startProbe()

	case "left", "right":
		if m.tzFocused() {
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			m.tzIndex = (m.tzIndex + delta + len(installer.Timezones)) % len(installer.Timezones)
			_ = m.Session.SetTimezone(installer.Timezones[m.tzIndex])
			return m, nil
		}
	}

	// Everything else goes to the focused text input.
	if m.tzFocused() || len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.syncFields()
	return m, cmd
}

func (m Model) moveFocus(delta int) Model {
	count := m.fieldCount()
	if count == 0 {
		return m
	}
	m.focus = (m.focus + delta + count) % count
	m.applyFocus()
	return m
}

// advance attempts the Continue transition. On the Database step a
// successful transition also fires the install commit, exactly once.
func (m Model) advance() (tea.Model, tea.Cmd) {
	m.syncFields()

	if !m.Session.CanContinue() {
		if !m.Session.Busy() {
			m.setBanner(m.invalidStepMessage(), true)
		}
		return m, nil
	}

	bundle := m.Session.Bundle()
	fireCommit, ok := m.Session.Continue()
	if !ok {
		return m, nil
	}

	m.clearBanner()
	m.rebuildInputs()
	if fireCommit {
		return m, tea.Batch(m.installCmd(bundle), m.spinner.Tick)
	}
	return m, nil
}

// retreat attempts the Back transition.
func (m Model) retreat() (tea.Model, tea.Cmd) {
	m.syncFields()
	if !m.Session.Back() {
		return m, nil
	}
	m.clearBanner()
	m.redirectScheduled = false
	m.rebuildInputs()
	return m, nil
}

// startProbe fires the connectivity test if the session permits one.
func (m Model) startProbe() (tea.Model, tea.Cmd) {
	m.syncFields()
	if !m.Session.BeginProbe() {
		if m.Session.Step() == installer.StepDatabase && !m.Session.Busy() {
			m.setBanner("fill in all connection fields before testing", true)
		}
		return m, nil
	}
	m.setBanner("Testing connection…", false)
	return m, tea.Batch(m.probeCmd(m.Session.Database()), m.spinner.Tick)
}

// invalidStepMessage explains why the current step cannot be passed.
func (m Model) invalidStepMessage() string {
	switch m.Session.Step() {
	case installer.StepApplication:
		return installer.ErrAppNameRequired.Error()
	case installer.StepAdmin:
		if err := installer.ValidateAdmin(m.Session.Admin()); err != nil {
			return err.Error()
		}
	case installer.StepDatabase:
		if !m.Session.Database().Complete() {
			return installer.ErrConnectionIncomplete.Error()
		}
		return "test the database connection before continuing (ctrl+t)"
	}
	return "this step is not complete yet"
}
