package main

import (
	"log/slog"

	"ttn-th-ingest/internal/api"
	"ttn-th-ingest/internal/metrics"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the read-only history API without ingesting",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	ctx, stop := signalContext()
	defer stop()

	database, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	apiCfg := api.Config{
		DB:      database,
		Health:  map[string]api.Pinger{"postgres": database},
		Metrics: metrics.New().Handler(),
	}
	if states := newStateCache(); states != nil {
		defer states.Close()
		apiCfg.States = states
		apiCfg.Health["redis"] = states
	}

	srv := startHTTP(ctx, api.New(apiCfg).Routes())
	<-ctx.Done()
	slog.Info("Shutting down API server...")
	shutdownHTTP(srv)
	return nil
}
