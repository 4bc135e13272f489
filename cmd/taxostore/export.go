package main

import (
	"fmt"

	"github.com/arthur-debert/taxostore/export"
	"github.com/spf13/cobra"
)

func (cli *CLI) newExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a zip archive of all three collections",
		Long: `Write literature.json, taxonomy.json, sample.json and manifest.json into
a timestamped zip archive, either into a local directory or to an S3 bucket.

S3 credentials come from the default AWS chain unless TAXOSTORE_S3_ACCESS_KEY_ID
and TAXOSTORE_S3_SECRET_ACCESS_KEY are set.`,
		Example: `  taxostore export --out ./backups
  taxostore export --s3-bucket my-catalog --s3-prefix nightly --s3-region eu-west-1
  taxostore export --s3-bucket catalog --s3-endpoint http://localhost:9000 --s3-path-style`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sink, err := cli.exportSink(cmd)
			if err != nil {
				return err
			}
			cat, err := cli.openCatalog()
			if err != nil {
				return err
			}

			location, err := export.Export(cmd.Context(), cat.Snapshot(), sink)
			if err != nil {
				return WrapError("export catalog", err)
			}
			cli.logger.Info("catalog exported", "location", location)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), location)
			return err
		},
	}

	f := cmd.Flags()
	f.StringP("out", "o", "", "Directory to write the archive into")
	f.String("s3-bucket", "", "Upload to this S3 bucket instead of a directory")
	f.String("s3-prefix", "", "Key prefix inside the bucket")
	f.String("s3-region", "", "Bucket region (default us-east-1)")
	f.String("s3-endpoint", "", "Custom endpoint for S3-compatible stores")
	f.Bool("s3-path-style", false, "Use path-style bucket addressing")
	for _, flag := range []string{"out", "s3-bucket", "s3-prefix", "s3-region", "s3-endpoint", "s3-path-style"} {
		_ = cli.viperInst.BindPFlag("export."+flag, f.Lookup(flag))
	}
	return cmd
}

func (cli *CLI) exportSink(cmd *cobra.Command) (export.Sink, error) {
	v := cli.viperInst
	bucket := v.GetString("export.s3-bucket")
	out := v.GetString("export.out")

	switch {
	case bucket != "" && out != "":
		return nil, NewValidationError("export catalog", "destination", "--out and --s3-bucket",
			"Pass either --out or --s3-bucket, not both")
	case bucket != "":
		sink, err := export.NewS3Sink(cmd.Context(), export.S3Config{
			Bucket:          bucket,
			Prefix:          v.GetString("export.s3-prefix"),
			Region:          v.GetString("export.s3-region"),
			Endpoint:        v.GetString("export.s3-endpoint"),
			PathStyle:       v.GetBool("export.s3-path-style"),
			AccessKeyID:     v.GetString("s3-access-key-id"),
			SecretAccessKey: v.GetString("s3-secret-access-key"),
			SessionToken:    v.GetString("s3-session-token"),
		})
		if err != nil {
			return nil, WrapError("export catalog", err, CommonSuggestions.CheckConfig)
		}
		return sink, nil
	case out != "":
		return export.DirSink{Dir: out}, nil
	}
	return nil, NewValidationError("export catalog", "destination", "",
		"Pass --out DIR or --s3-bucket BUCKET")
}
