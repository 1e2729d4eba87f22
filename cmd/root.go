// Package cmd implements the vitrine-setup CLI: the interactive wizard plus
// the non-interactive probe/apply/quick/history commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vitrine-cms/vitrine-setup/internal/config"
	"github.com/vitrine-cms/vitrine-setup/internal/history"
	"github.com/vitrine-cms/vitrine-setup/internal/installclient"
	"github.com/vitrine-cms/vitrine-setup/internal/notify"
)

var (
	version string

	baseDir   string
	serverURL string
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "vitrine-setup",
	Short: "First-run installation wizard for Vitrine",
	Long: `vitrine-setup configures a fresh Vitrine site: application identity, the
first administrator account and the PostgreSQL connection, then hands the
merged answers to the install service in a single request.

Run without arguments for the interactive wizard, or use the probe/apply/quick
commands for scripted installs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWizard()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initBaseDir)

	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "install service URL (default from config, else "+config.DefaultServerURL+")")
	rootCmd.PersistentFlags().StringVar(&baseDir, "dir", "", "settings directory (default: working directory)")
}

func initBaseDir() {
	if baseDir != "" {
		return
	}
	var err error
	baseDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(1)
	}
}

// resolveServerURL applies the flag > config > default precedence.
func resolveServerURL() string {
	if serverURL != "" {
		return serverURL
	}
	return config.ServerURL(baseDir)
}

// newBackend builds the install API client for the resolved server.
func newBackend() *installclient.Client {
	return installclient.New(resolveServerURL())
}

// openHistory opens the local attempt log. Failures are not fatal: the log is
// a convenience, not a requirement.
func openHistory() *history.Store {
	store, err := history.Open(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: attempt log unavailable: %v\n", err)
		return nil
	}
	return store
}

// console is the notifier used by the non-interactive commands.
func console() notify.Console {
	return notify.Console{Out: os.Stdout, Err: os.Stderr}
}
