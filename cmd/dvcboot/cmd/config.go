package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mlcup/dvcboot/pkg/dlogger"
)

// CLIConfig describes the CLI configuration, the set of flags that do not
// change across runs, analogous to "git config ...".
type CLIConfig struct {
	// bug in viper? Need to keep names of fields the same as the serialized names..
	Loglevel string `json:"loglevel" yaml:"loglevel"` // Default logging level
	Region   string `json:"region" yaml:"region"`     // AWS region used by remote check
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *CLIConfig) setBootstrapParams(params *paramsT) {
	if params.root.logLevel == "" {
		params.root.logLevel = c.Loglevel
	}
	if params.root.logLevel == "" {
		params.root.logLevel = dlogger.LogLevelInfo
	}
	if params.check.region == "" {
		params.check.region = c.Region
	}
}

// configCmd represents the config related commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to manage the dvcboot config",
	Long: `Commands to manage the dvcboot CLI config.

This is dvcboot's own configuration, not the .dvc/config of a checkout.`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
