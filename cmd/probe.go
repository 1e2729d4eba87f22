package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitrine-cms/vitrine-setup/internal/installclient"
	"github.com/vitrine-cms/vitrine-setup/internal/installer"
)

var probeConn installer.DatabaseConnection

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Test a database connection through the install service",
	Long: `Ask the install service to verify a PostgreSQL connection without writing
anything. Exits non-zero when the connection cannot be verified.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := installer.ValidateConnection(probeConn); err != nil {
			return err
		}

		store := openHistory()
		if store != nil {
			defer store.Close()
		}

		prober := installclient.Prober{Backend: newBackend(), Notify: console(), Log: store}
		ok, _ := prober.Probe(context.Background(), probeConn)
		if !ok {
			return fmt.Errorf("connection test failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)

	probeCmd.Flags().StringVar(&probeConn.Host, "host", "localhost", "database host")
	probeCmd.Flags().StringVar(&probeConn.Port, "port", "5432", "database port")
	probeCmd.Flags().StringVar(&probeConn.Database, "database", "", "database name")
	probeCmd.Flags().StringVar(&probeConn.User, "user", "", "database user")
	probeCmd.Flags().StringVar(&probeConn.Password, "password", "", "database password")
}
