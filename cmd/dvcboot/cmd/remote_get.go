package cmd

import (
	"github.com/spf13/cobra"
)

var remoteGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the configured remote URL",
	Long: `Print the storage URL of this checkout's contest remote.

Exits with a non-zero status when no remote is configured yet.`,
	Run: func(cmd *cobra.Command, args []string) {
		_, _ = logStdOut("%s\n", configuredURL())
	},
}

func init() {
	remoteCmd.AddCommand(remoteGetCmd)
}
