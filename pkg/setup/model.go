// Package setup is the interactive installation wizard TUI: five steps from
// Welcome to Complete, with a connectivity probe gating the database step
// and a single install commit firing on the final forward transition.
package setup

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitrine-cms/vitrine-setup/internal/history"
	"github.com/vitrine-cms/vitrine-setup/internal/installclient"
	"github.com/vitrine-cms/vitrine-setup/internal/installer"
)

// Model is the Bubble Tea model for the setup wizard.
type Model struct {
	// Wizard state machine. All transition guards live here; the model only
	// reads state and calls methods.
	Session *installer.Session

	// Install API backend and optional local attempt log.
	Backend installclient.Backend
	Log     *history.Store

	// SiteURL is where the browser is pointed after a successful install.
	SiteURL string

	// OpenSite is invoked once, after the post-success delay. Nil in tests.
	OpenSite func(url string) error

	// Window dimensions
	Width  int
	Height int

	// Per-step text inputs, rebuilt from the session on step entry.
	inputs []textinput.Model
	focus  int

	// Timezone selection index on the Application step.
	tzIndex int

	spinner spinner.Model

	// Banner is the transient notification line under the header.
	banner      string
	bannerError bool

	// redirectScheduled guards the post-success redirect: exactly one.
	redirectScheduled bool

	quitting bool
}

// NewModel creates a wizard model over a fresh session.
func NewModel(sess *installer.Session, backend installclient.Backend) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	m := Model{
		Session: sess,
		Backend: backend,
		SiteURL: "/",
		spinner: sp,
		tzIndex: installer.TimezoneIndex(sess.App().Timezone),
	}
	m.rebuildInputs()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// fieldCount returns how many focusable slots the current step has. The
// Application step has one extra slot for the timezone selector.
func (m Model) fieldCount() int {
	if m.Session.Step() == installer.StepApplication {
		return len(m.inputs) + 1
	}
	return len(m.inputs)
}

// tzFocused reports whether the timezone selector holds focus.
func (m Model) tzFocused() bool {
	return m.Session.Step() == installer.StepApplication && m.focus == len(m.inputs)
}

// rebuildInputs recreates the text inputs for the current step from the
// session's field store, so values survive Back/Continue round trips.
func (m *Model) rebuildInputs() {
	f := m.Session.Fields()

	switch m.Session.Step() {
	case installer.StepApplication:
		name := newInput("Application name", f.App.Name, 80)
		company := newInput("Company name (optional)", f.App.CompanyName, 80)
		m.inputs = []textinput.Model{name, company}
		m.tzIndex = installer.TimezoneIndex(f.App.Timezone)

	case installer.StepAdmin:
		username := newInput("Username", f.Admin.Username, 60)
		email := newInput("Email", f.Admin.Email, 120)
		password := newSecretInput("Password", f.Admin.Password)
		confirm := newSecretInput("Confirm password", f.Admin.ConfirmPassword)
		m.inputs = []textinput.Model{username, email, password, confirm}

	case installer.StepDatabase:
		host := newInput("Host", f.Database.Host, 120)
		port := newInput("Port", f.Database.Port, 5)
		dbname := newInput("Database", f.Database.Database, 60)
		user := newInput("User", f.Database.User, 60)
		password := newSecretInput("Password", f.Database.Password)
		m.inputs = []textinput.Model{host, port, dbname, user, password}

	default:
		m.inputs = nil
	}

	m.focus = 0
	m.applyFocus()
}

func newInput(placeholder, value string, charLimit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = charLimit
	ti.Width = 40
	ti.SetValue(value)
	return ti
}

func newSecretInput(placeholder, value string) textinput.Model {
	ti := newInput(placeholder, value, 120)
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	return ti
}

// applyFocus focuses the active input and blurs the rest.
func (m *Model) applyFocus() {
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// syncFields writes the current step's input values through to the session,
// so validity predicates always see what is on screen.
func (m *Model) syncFields() {
	switch m.Session.Step() {
	case installer.StepApplication:
		m.Session.SetAppName(m.inputs[0].Value())
		m.Session.SetCompanyName(m.inputs[1].Value())

	case installer.StepAdmin:
		m.Session.SetAdminUsername(m.inputs[0].Value())
		m.Session.SetAdminEmail(m.inputs[1].Value())
		m.Session.SetAdminPassword(m.inputs[2].Value())
		m.Session.SetAdminConfirmPassword(m.inputs[3].Value())

	case installer.StepDatabase:
		m.Session.SetDatabaseHost(m.inputs[0].Value())
		m.Session.SetDatabasePort(m.inputs[1].Value())
		m.Session.SetDatabaseName(m.inputs[2].Value())
		m.Session.SetDatabaseUser(m.inputs[3].Value())
		m.Session.SetDatabasePassword(m.inputs[4].Value())
	}
}

func (m *Model) setBanner(msg string, isError bool) {
	m.banner = msg
	m.bannerError = isError
}

func (m *Model) clearBanner() {
	m.banner = ""
	m.bannerError = false
}
