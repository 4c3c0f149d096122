package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/henri-ngl/learning-dbt/pkg/bqseed"
)

// OptionalBasePath accepts zero or one base_path argument.
func OptionalBasePath(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf(`accepts at most 1 arg(s), received %d

Usage: %s

Example:
  %s ./seeds --dataset dbtlearn`, len(args), cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}

// basePathFromArgs returns the base path argument or the default.
func basePathFromArgs(args []string) string {
	if len(args) == 0 || args[0] == "" {
		return bqseed.DefaultBasePath
	}
	return args[0]
}
