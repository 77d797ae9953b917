package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/wsjtx-adif/internal/band"
)

var bandsFormat string

var bandsCmd = &cobra.Command{
	Use:   "bands",
	Short: "Show the band table used to label contacts",
	Args:  cobra.NoArgs,
	RunE:  runBands,
}

func init() {
	bandsCmd.Flags().StringVar(&bandsFormat, "format", "md", "Output format: md, csv")
}

func runBands(cmd *cobra.Command, args []string) error {
	switch bandsFormat {
	case "csv":
		printBandsCSV(cmd.OutOrStdout(), band.Table())
	case "md":
		printBands(cmd.OutOrStdout(), band.Table())
	default:
		return fmt.Errorf("unknown format %q", bandsFormat)
	}
	return nil
}

func printBands(w io.Writer, bands []band.Band) {
	fmt.Fprintf(w, "%-6s%12s%12s\n", "Band", "From kHz", "To kHz")
	fmt.Fprintln(w, "------------------------------")
	for _, b := range bands {
		fmt.Fprintf(w, "%-6s%12s%12s\n", b.Name, formatKHz(b.LowKHz), formatKHz(b.HighKHz))
	}
}

func printBandsCSV(w io.Writer, bands []band.Band) {
	fmt.Fprintln(w, "band,low_khz,high_khz")
	for _, b := range bands {
		fmt.Fprintf(w, "%s,%s,%s\n", b.Name, formatKHz(b.LowKHz), formatKHz(b.HighKHz))
	}
}

func formatKHz(khz float64) string {
	return strconv.FormatFloat(khz, 'f', -1, 64)
}
