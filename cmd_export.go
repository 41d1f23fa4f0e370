package main

import (
	"context"
	"errors"
	"log/slog"

	"ttn-th-ingest/internal/export"

	"github.com/spf13/cobra"
)

var (
	exportOut      string
	exportS3Bucket string
	exportS3Key    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the raw payload of every stored event, one per line",
	Long: `Writes measurements ordered by counter, then supervisory messages ordered
by counter. The output can be fed back through the publisher script.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context())
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "local file to write")
	exportCmd.Flags().StringVar(&exportS3Bucket, "s3-bucket", "", "S3 bucket to upload to")
	exportCmd.Flags().StringVar(&exportS3Key, "s3-key", "", "S3 object key")
	exportCmd.MarkFlagsMutuallyExclusive("out", "s3-bucket")
	exportCmd.MarkFlagsRequiredTogether("s3-bucket", "s3-key")
	exportCmd.MarkFlagsOneRequired("out", "s3-bucket")
}

func runExport(ctx context.Context) error {
	var dest export.Destination
	switch {
	case exportOut != "":
		dest = export.FileDestination{Path: exportOut}
	case exportS3Bucket != "" && exportS3Key != "":
		s3dest, err := export.NewS3Destination(ctx, exportS3Bucket, exportS3Key, cfg.Export.S3Region, cfg.Export.S3Endpoint)
		if err != nil {
			return err
		}
		dest = s3dest
	default:
		return errors.New("export needs --out or --s3-bucket with --s3-key")
	}

	database, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	n, err := export.New(database).Run(ctx, dest)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "Export complete", "events", n)
	return nil
}
