package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mlcup/dvcboot/pkg/bootstrap"
	"github.com/mlcup/dvcboot/pkg/dlogger"
)

// rootCmd represents the base command. Invoked without a subcommand it runs
// the bootstrap itself, so a bare `dvcboot` in a checkout is all a
// contestant needs before `dvc add` / `dvc push`.
var rootCmd = &cobra.Command{
	Use:   "dvcboot",
	Short: "dvcboot configures the DVC remote for an ML-Cup checkout",
	Long: `dvcboot makes sure this checkout has a DVC S3 remote configured under the
shared contest bucket, namespaced by a random key generated once per checkout.

Running it again after the remote is configured is a no-op: the existing key
is detected and preserved, so submissions keep pushing to the same namespace.
`,
	Run: func(cmd *cobra.Command, args []string) {
		runBootstrap()
	},
}

var config *CLIConfig

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)
	addLogLevelFlag(rootCmd)
	addDirFlag(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if os.Getenv("DVCBOOT_CONFIG") != "" {
		viper.SetConfigFile(os.Getenv("DVCBOOT_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.dvcboot")
		viper.SetConfigName("dvcboot")
	}
	viper.SetEnvPrefix("dvcboot")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig() // the config file is optional
	var err error
	config, err = newConfig()
	if err != nil {
		logFatalln(err)
	}
	config.setBootstrapParams(&dvcbootParams)
}

func newBootstrapper() *bootstrap.Bootstrapper {
	logger, err := dlogger.GetLogger(dvcbootParams.root.logLevel)
	if err != nil {
		wrapFatalln("set log level", err)
		return nil
	}
	return bootstrap.New(
		bootstrap.Logger(logger),
		bootstrap.ConfigDir(filepath.Join(dvcbootParams.root.dir, bootstrap.DefaultConfigDir)),
		bootstrap.LookPath(lookPathFn),
	)
}

func runBootstrap() {
	b := newBootstrapper()
	res, err := b.Ensure()
	if err == bootstrap.ErrToolMissing {
		wrapFatalWithCodef(1, "dvcboot: %v. Install dvc and retry.", err)
		return
	}
	if err != nil {
		wrapFatalln("bootstrap remote", err)
		return
	}
	if res.Created {
		infoLogger.Printf("remote %q configured: %s", bootstrap.DefaultRemoteName, res.URL)
	} else {
		infoLogger.Printf("remote %q already configured: %s", bootstrap.DefaultRemoteName, res.URL)
	}
}
