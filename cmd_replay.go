package main

import (
	"context"
	"errors"
	"log/slog"

	"ttn-th-ingest/internal/processors/replayer"

	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Feed archived uplinks from Kafka back through ingestion",
	Long: `Consumes the archive topic with the configured consumer group and ingests
every record. Delivery is at-least-once, so replaying a stretch that was
already ingested creates duplicate rows.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReplay()
	},
}

func runReplay() error {
	if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.ArchiveTopic == "" {
		return errors.New("replay needs kafka.brokers and kafka.archive_topic")
	}
	ctx, stop := signalContext()
	defer stop()

	database, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	p := newPipeline(ctx, database, false)
	defer p.Close()

	r := replayer.New(replayer.Config{
		Brokers:         cfg.Kafka.Brokers,
		ConsumerGroupID: cfg.Kafka.ConsumerGroupID,
		Topic:           cfg.Kafka.ArchiveTopic,
		Handler:         p.ingester,
	})
	defer r.Close(context.Background())

	slog.InfoContext(ctx, "Replaying archived uplinks", "topic", cfg.Kafka.ArchiveTopic, "group", cfg.Kafka.ConsumerGroupID)
	r.Run(ctx)
	return nil
}
