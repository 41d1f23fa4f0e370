package main

import (
	"context"
	"log/slog"

	"ttn-th-ingest/internal/mqtt"
	"ttn-th-ingest/internal/processors/archiver"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Subscribe to device uplinks and persist them",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIngest()
	},
}

func runIngest() error {
	ctx, stop := signalContext()
	defer stop()

	slog.InfoContext(ctx, "Starting ingestion service...")
	database, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	p := newPipeline(ctx, database, true)
	defer p.Close()

	var listener mqtt.Listener = p.ingester
	if cfg.Kafka.ArchiveEnabled {
		arch := archiver.New(archiver.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.ArchiveTopic,
		})
		defer arch.Close(context.Background())
		listener = arch.Tap(p.ingester)
		slog.InfoContext(ctx, "Archiving raw uplinks", "topic", cfg.Kafka.ArchiveTopic)
	}

	srv := startHTTP(ctx, p.newAPI(database).Routes())
	defer shutdownHTTP(srv)

	client, err := mqtt.Connect(ctx, mqtt.Config{
		Broker:         cfg.MQTT.Broker,
		ClientID:       cfg.MQTT.ClientID,
		Username:       cfg.MQTT.Username,
		Password:       cfg.MQTT.Password,
		CAFile:         cfg.MQTT.CAFile,
		Topic:          cfg.MQTT.Topic,
		QoS:            byte(cfg.MQTT.QoS),
		KeepAlive:      cfg.MQTT.KeepAlive,
		ConnectTimeout: cfg.MQTT.ConnectTimeout,
		ConnectRetries: cfg.MQTT.ConnectRetries,
	}, listener)
	if err != nil {
		return err
	}
	defer client.Close()

	<-ctx.Done()
	slog.Info("Shutting down ingestion service...")
	return nil
}
