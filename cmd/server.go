package cmd

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/vitrine-cms/vitrine-setup/internal/config"
)

var serverCmd = &cobra.Command{
	Use:   "server [url]",
	Short: "Show or set the install service URL",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Println(config.ServerURL(baseDir))
			return nil
		}

		u, err := url.Parse(args[0])
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid server URL %q", args[0])
		}
		if err := config.SetServerURL(baseDir, args[0]); err != nil {
			return err
		}
		fmt.Println("Install service set to", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
