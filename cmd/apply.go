package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitrine-cms/vitrine-setup/internal/installclient"
	"github.com/vitrine-cms/vitrine-setup/internal/installer"
)

var (
	applyFile      string
	applySkipProbe bool
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Install from a bundle file",
	Long: `Run a non-interactive installation from a YAML bundle:

  app:
    name: My Site
    company_name: Acme
    timezone: UTC
  admin:
    username: admin
    email: admin@example.com
    password: secret-password
  database:
    host: localhost
    port: "5432"
    database: vitrine
    user: vitrine
    password: db-password

The connection is tested before the install fires, the same gate the wizard
applies.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bundle, err := installer.LoadBundle(applyFile)
		if err != nil {
			return err
		}

		store := openHistory()
		if store != nil {
			defer store.Close()
		}

		backend := newBackend()
		out := console()
		ctx := context.Background()

		if !applySkipProbe {
			prober := installclient.Prober{Backend: backend, Notify: out, Log: store}
			if ok, _ := prober.Probe(ctx, bundle.Database); !ok {
				return fmt.Errorf("refusing to install against an unverified connection")
			}
		}

		committer := installclient.Committer{Backend: backend, Notify: out, Log: store}
		if ok, _ := committer.Commit(ctx, bundle); !ok {
			return fmt.Errorf("installation failed")
		}

		out.Infof("Your site is ready at %s", resolveServerURL())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringVarP(&applyFile, "file", "f", "", "bundle file (required)")
	applyCmd.Flags().BoolVar(&applySkipProbe, "skip-probe", false, "skip the connection test before installing")
	applyCmd.MarkFlagRequired("file")
}
