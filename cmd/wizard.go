package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vitrine-cms/vitrine-setup/internal/config"
	"github.com/vitrine-cms/vitrine-setup/internal/installer"
	"github.com/vitrine-cms/vitrine-setup/pkg/setup"
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Run the interactive installation wizard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWizard()
	},
}

func init() {
	rootCmd.AddCommand(wizardCmd)
}

func runWizard() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the wizard needs a terminal; use 'vitrine-setup apply' or 'vitrine-setup quick' for scripted installs")
	}

	sess := installer.NewSession()
	applyRememberedDefaults(sess)

	store := openHistory()
	if store != nil {
		defer store.Close()
	}

	model := setup.NewModel(sess, newBackend())
	model.Log = store
	model.SiteURL = resolveServerURL()
	model.OpenSite = openBrowser

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running wizard: %w", err)
	}

	if sess.Commit() == installer.CommitSucceeded {
		conn := sess.Database()
		if err := config.RememberConnection(baseDir, conn.Host, conn.Port, conn.Database, conn.User); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not save connection defaults: %v\n", err)
		}
	}

	return nil
}

// applyRememberedDefaults pre-fills the database step with the non-secret
// values from the previous run.
func applyRememberedDefaults(sess *installer.Session) {
	cfg, err := config.Load(baseDir)
	if err != nil {
		return
	}
	if cfg.LastHost != "" {
		sess.SetDatabaseHost(cfg.LastHost)
	}
	if cfg.LastPort != "" {
		sess.SetDatabasePort(cfg.LastPort)
	}
	if cfg.LastDatabase != "" {
		sess.SetDatabaseName(cfg.LastDatabase)
	}
	if cfg.LastUser != "" {
		sess.SetDatabaseUser(cfg.LastUser)
	}
}

// openBrowser points the default browser at the installed site.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
