package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the vitrine-setup version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("vitrine-setup", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
