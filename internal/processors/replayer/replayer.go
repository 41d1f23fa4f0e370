package replayer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	k "ttn-th-ingest/internal/kafka"
	"ttn-th-ingest/internal/worker"

	"github.com/segmentio/kafka-go"
)

var (
	ErrReadMessage   = errors.New("error reading message")
	ErrInvalidRecord = errors.New("invalid archive record")
)

type handler interface {
	HandleMessage(ctx context.Context, topic string, payload []byte) error
}

type Config struct {
	Brokers         []string
	ConsumerGroupID string
	Topic           string
	Handler         handler
}

// Replayer feeds archived uplinks back through the ingestion pipeline.
type Replayer struct {
	worker  *worker.Worker
	reader  k.Reader
	handler handler
}

func New(cfg Config) *Replayer {
	r := &Replayer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:     cfg.Brokers,
			GroupID:     cfg.ConsumerGroupID,
			Topic:       cfg.Topic,
			StartOffset: kafka.FirstOffset,
		}),
		handler: cfg.Handler,
	}

	r.worker = worker.New(worker.Config{
		Name:      "replayer-worker",
		Processor: r,
	})
	return r
}

func (r *Replayer) Run(ctx context.Context) {
	r.worker.Run(ctx)
}

func (r *Replayer) Close(ctx context.Context) {
	slog.InfoContext(ctx, "Closing replayer resources...")
	if err := r.reader.Close(); err != nil {
		slog.WarnContext(ctx, "Closing archive reader failed", "error", err)
	}
}

// Auto-commit active. A record is committed once read, whatever the
// ingestion outcome; the ingester has already logged failures.
func (r *Replayer) ProcessMessage(ctx context.Context) error {
	const fn = "Replayer:ProcessMessage"
	m, err := r.reader.ReadMessage(ctx)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrReadMessage, err)
	}
	topic, payload, err := k.ParseUplinkRecord(m)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrInvalidRecord, err)
	}
	_ = r.handler.HandleMessage(ctx, topic, payload)
	return nil
}
