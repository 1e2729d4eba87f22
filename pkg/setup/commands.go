package setup

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitrine-cms/vitrine-setup/internal/installclient"
	"github.com/vitrine-cms/vitrine-setup/internal/installer"
	"github.com/vitrine-cms/vitrine-setup/internal/notify"
)

// redirectDelay is how long the success screen lingers before opening the
// installed site.
const redirectDelay = 2 * time.Second

// ProbeResultMsg is delivered when the connectivity probe settles.
type ProbeResultMsg struct {
	OK      bool
	Message string
}

// InstallResultMsg is delivered when the install commit settles.
type InstallResultMsg struct {
	OK      bool
	Message string
}

// redirectMsg fires once, redirectDelay after a successful install.
type redirectMsg struct{}

// probeCmd runs one connectivity probe against the backend. The session has
// already been marked in-flight by the caller.
func (m Model) probeCmd(conn installer.DatabaseConnection) tea.Cmd {
	prober := installclient.Prober{Backend: m.Backend, Notify: notify.Discard{}, Log: m.Log}
	return func() tea.Msg {
		ok, msg := prober.Probe(context.Background(), conn)
		return ProbeResultMsg{OK: ok, Message: msg}
	}
}

// installCmd sends the full bundle to the backend. The session has already
// been marked in-flight by the Database→Complete transition.
func (m Model) installCmd(bundle installer.Bundle) tea.Cmd {
	committer := installclient.Committer{Backend: m.Backend, Notify: notify.Discard{}, Log: m.Log}
	return func() tea.Msg {
		ok, msg := committer.Commit(context.Background(), bundle)
		return InstallResultMsg{OK: ok, Message: msg}
	}
}

// redirectCmd schedules the single post-success redirect.
func redirectCmd() tea.Cmd {
	return tea.Tick(redirectDelay, func(time.Time) tea.Msg {
		return redirectMsg{}
	})
}
