package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the install service is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		url := resolveServerURL()
		resp, err := newBackend().Health(ctx)
		if err != nil {
			return fmt.Errorf("install service at %s unreachable: %w", url, err)
		}
		fmt.Printf("%s: %s\n", url, resp.Status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
