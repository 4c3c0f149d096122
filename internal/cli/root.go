package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bqseed",
	Short: "Load CSV seed files into BigQuery",
	Long: `bqseed loads the CSV files under <base_path>/resources into BigQuery tables,
one load job at a time, in the configured order. Each job skips the header row
and lets BigQuery autodetect the schema. The first failure stops the run;
tables loaded before it are left in place.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or labels
  11 - BigQuery client could not be created
  12 - User denied table truncation
  13 - Load job failed
  14 - Source CSV missing or unreadable
  15 - Load job rejected on submission`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout, os.Stderr)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
