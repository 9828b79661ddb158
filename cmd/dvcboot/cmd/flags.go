package cmd

import (
	"github.com/spf13/cobra"
)

type paramsT struct {
	root struct {
		logLevel string
		dir      string
	}
	check struct {
		region string
		limit  int
	}
}

var dvcbootParams = paramsT{}

func addLogLevelFlag(cmd *cobra.Command) string {
	loglevel := "loglevel"
	cmd.PersistentFlags().StringVar(&dvcbootParams.root.logLevel, loglevel, "",
		"The logging level, one of: info, debug, none")
	return loglevel
}

func addDirFlag(cmd *cobra.Command) string {
	dir := "dir"
	cmd.PersistentFlags().StringVar(&dvcbootParams.root.dir, dir, ".",
		"The checkout directory holding the .dvc configuration")
	return dir
}

func addRegionFlag(cmd *cobra.Command) string {
	region := "region"
	cmd.Flags().StringVar(&dvcbootParams.check.region, region, "",
		"The AWS region of the contest bucket. Defaults to the ambient AWS configuration")
	return region
}

func addLimitFlag(cmd *cobra.Command) string {
	limit := "limit"
	cmd.Flags().IntVar(&dvcbootParams.check.limit, limit, 100,
		"Maximum number of namespace objects to report when probing the remote")
	return limit
}
