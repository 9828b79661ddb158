package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mlcup/dvcboot/pkg/dvccfg"
)

var remoteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all remotes in the dvc config",
	Long: `List every remote declared in this checkout's .dvc/config, not just the
contest remote, in file order.`,
	Run: func(cmd *cobra.Command, args []string) {
		lines, err := dvccfg.Load(afero.NewOsFs(), dvcConfigPath())
		if err != nil {
			wrapFatalln("read dvc config", err)
			return
		}
		for _, remote := range dvccfg.Remotes(lines) {
			url := remote.URL
			if url == "" {
				url = "<no url>"
			}
			_, _ = logStdOut("%s\t%s\n", remote.Name, url)
		}
	},
}

func init() {
	remoteCmd.AddCommand(remoteListCmd)
}
