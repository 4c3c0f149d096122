package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// writeDispositions contains the --write-disposition values offered for completion.
var writeDispositions = []string{"append", "truncate", "empty"}

// completeWriteDispositions provides shell completion for --write-disposition.
func completeWriteDispositions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, wd := range writeDispositions {
		if strings.HasPrefix(wd, toComplete) {
			matches = append(matches, wd)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeDirectories provides shell completion for the base path argument.
func completeDirectories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveFilterDirs
}

// completeCredentialFiles offers JSON key files for --credentials-file.
func completeCredentialFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
}
