package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wsjtx-adif",
	Short: "Convert WSJT-X fox mode logs to ADIF",
	Long: `wsjtx-adif reads the line-oriented log WSJT-X writes in fox mode,
detects completed contacts itself instead of trusting WSJT-X's logging
decision, and writes them as ADIF records.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(bandsCmd)
}
