package cmd

import (
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mlcup/dvcboot/pkg/bootstrap"
	"github.com/mlcup/dvcboot/pkg/dvccfg"
)

// remoteCmd represents the remote related commands
var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Commands to inspect the configured DVC remote",
	Long: `Commands to inspect the DVC remote of this checkout.

These commands never modify .dvc/config; only running dvcboot without a
subcommand does, and only when no remote is configured yet.`,
}

func init() {
	rootCmd.AddCommand(remoteCmd)
}

func dvcConfigPath() string {
	return filepath.Join(dvcbootParams.root.dir, bootstrap.DefaultConfigDir, "config")
}

// configuredURL loads the checkout's remote URL, or exits when none is
// configured.
func configuredURL() string {
	lines, err := dvccfg.Load(afero.NewOsFs(), dvcConfigPath())
	if err != nil {
		wrapFatalln("read dvc config", err)
		return ""
	}
	url, ok := dvccfg.FindURL(lines, bootstrap.DefaultBucketBase)
	if !ok {
		wrapFatalWithCodef(2, "no remote configured under %s in %s, run dvcboot first",
			bootstrap.DefaultBucketBase, dvcConfigPath())
		return ""
	}
	return url
}
