package archiver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	k "ttn-th-ingest/internal/kafka"
	"ttn-th-ingest/internal/message"

	"github.com/segmentio/kafka-go"
)

var ErrWriteMessage = errors.New("error writing message")

type Config struct {
	Brokers []string
	Topic   string
}

// Archiver copies raw uplinks to a Kafka topic so they can be replayed.
type Archiver struct {
	writer k.Writer
}

func New(cfg Config) *Archiver {
	return &Archiver{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (a *Archiver) Archive(ctx context.Context, topic string, payload []byte) error {
	const fn = "Archiver:Archive"
	key := topic
	if t, err := message.ParseTopic(topic); err == nil {
		key = t.DeviceID
	}
	if err := a.writer.WriteMessages(ctx, k.UplinkRecord(key, topic, payload)); err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrWriteMessage, err)
	}
	return nil
}

func (a *Archiver) Close(ctx context.Context) {
	slog.InfoContext(ctx, "Closing archiver resources...")
	if err := a.writer.Close(); err != nil {
		slog.WarnContext(ctx, "Closing archive writer failed", "error", err)
	}
}

type listener interface {
	HandleMessage(ctx context.Context, topic string, payload []byte) error
	OnConnect(ctx context.Context)
	OnDisconnect(ctx context.Context, reason string)
}

// Tap archives every delivery before passing it on to next. An archive
// failure is logged and does not stop ingestion.
type Tap struct {
	archiver *Archiver
	next     listener
}

func (a *Archiver) Tap(next listener) *Tap {
	return &Tap{archiver: a, next: next}
}

func (t *Tap) HandleMessage(ctx context.Context, topic string, payload []byte) error {
	if err := t.archiver.Archive(ctx, topic, payload); err != nil {
		slog.ErrorContext(ctx, "Failed to archive uplink", "topic", topic, "error", err)
	}
	return t.next.HandleMessage(ctx, topic, payload)
}

func (t *Tap) OnConnect(ctx context.Context) { t.next.OnConnect(ctx) }

func (t *Tap) OnDisconnect(ctx context.Context, reason string) { t.next.OnDisconnect(ctx, reason) }
