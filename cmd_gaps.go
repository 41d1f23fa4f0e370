package main

import (
	"context"
	"log/slog"
	"os"

	"ttn-th-ingest/internal/gaps"

	"github.com/spf13/cobra"
)

var gapsJSON bool

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "Report missing frame counters per device",
	Long: `Reads the stored history and reports every jump of more than one in a
device's counter sequence. The scan is not isolated from a concurrently
running ingester; results are a best-effort point-in-time view.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGaps(cmd.Context())
	},
}

func init() {
	gapsCmd.Flags().BoolVar(&gapsJSON, "json", false, "write gap records as newline-delimited JSON to stdout")
}

func runGaps(ctx context.Context) error {
	database, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	report, err := gaps.NewAnalyzer(database).Run(ctx)
	if err != nil {
		return err
	}
	if gapsJSON {
		return report.WriteJSON(os.Stdout)
	}
	report.Log(ctx, slog.Default())
	slog.InfoContext(ctx, "Gap analysis complete", "devices", len(report.Devices), "gaps", report.GapCount())
	return nil
}
