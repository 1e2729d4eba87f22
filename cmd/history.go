package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent probe and install attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openHistory()
		if store == nil {
			return fmt.Errorf("attempt log unavailable")
		}
		defer store.Close()

		attempts, err := store.Recent(historyLimit)
		if err != nil {
			return err
		}
		if len(attempts) == 0 {
			fmt.Println("No attempts recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tKIND\tTARGET\tRESULT\tMESSAGE")
		for _, a := range attempts {
			result := "ok"
			if !a.Success {
				result = "failed"
			}
			fmt.Fprintf(w, "%s\t%s\t%s/%s\t%s\t%s\n",
				a.CreatedAt.Local().Format("2006-01-02 15:04"),
				a.Kind, a.Host, a.Database, result, a.Message)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "max attempts to show")
}
