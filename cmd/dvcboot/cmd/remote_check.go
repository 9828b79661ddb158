package cmd

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/spf13/cobra"

	"github.com/mlcup/dvcboot/pkg/storage"
	"github.com/mlcup/dvcboot/pkg/storage/sthree"
)

var remoteCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe the configured remote on S3",
	Long: `Probe the configured contest remote: verify the bucket is reachable with
the ambient AWS credentials and report how many objects already live under
this checkout's namespace. The bucket is never modified.`,
	Run: func(cmd *cobra.Command, args []string) {
		url := configuredURL()
		bucket, prefix, err := sthree.SplitURL(url)
		if err != nil {
			wrapFatalln("parse remote url", err)
			return
		}
		awsConfig := aws.NewConfig()
		if dvcbootParams.check.region != "" {
			awsConfig = awsConfig.WithRegion(dvcbootParams.check.region)
		}
		store := sthree.New(sthree.Bucket(bucket), sthree.AWSConfig(awsConfig))

		keys, err := store.KeysPrefix(context.Background(),
			strings.TrimSuffix(prefix, "/")+"/", dvcbootParams.check.limit)
		switch err {
		case nil:
		case storage.ErrNotFound:
			wrapFatalWithCodef(3, "bucket %s not found", bucket)
			return
		case storage.ErrForbidden:
			wrapFatalWithCodef(3, "access to bucket %s denied, check AWS credentials", bucket)
			return
		default:
			wrapFatalln("probe remote", err)
			return
		}
		infoLogger.Printf("%s reachable, %d object(s) under namespace %s", store, len(keys), prefix)
	},
}

func init() {
	addRegionFlag(remoteCheckCmd)
	addLimitFlag(remoteCheckCmd)
	remoteCmd.AddCommand(remoteCheckCmd)
}
