// Package ingest runs every uplink through decode, classification and
// persistence. One bad message is logged and dropped; it never stops the
// stream.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ttn-th-ingest/internal/message"
	"ttn-th-ingest/internal/metrics"
	"ttn-th-ingest/internal/model"
)

var ErrPersist = errors.New("persist failed")

type eventPersister interface {
	Persist(ctx context.Context, kind model.EventKind, env message.Envelope) (model.Device, model.Event, error)
}

type connectionRecorder interface {
	InsertConnectionEvent(ctx context.Context, event *model.ConnectionEvent) error
}

// Mirror receives every committed event. Failures are logged and counted
// but do not affect the committed history.
type Mirror interface {
	Name() string
	Mirror(ctx context.Context, device model.Device, event model.Event) error
}

type Config struct {
	Persister   eventPersister
	Connections connectionRecorder
	Mirrors     []Mirror
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
}

type Ingester struct {
	persister   eventPersister
	connections connectionRecorder
	mirrors     []Mirror
	metrics     *metrics.Metrics
	log         *slog.Logger
}

func New(cfg Config) *Ingester {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := cfg.Metrics
	if m == nil {
		m = metrics.New()
	}
	return &Ingester{
		persister:   cfg.Persister,
		connections: cfg.Connections,
		mirrors:     cfg.Mirrors,
		metrics:     m,
		log:         logger,
	}
}

// HandleMessage ingests one uplink delivered on topic. All failures are
// logged here; the returned error only tells the caller which category the
// message fell into.
func (i *Ingester) HandleMessage(ctx context.Context, topic string, payload []byte) (err error) {
	const fn = "Ingester:HandleMessage"
	defer func() {
		if p := recover(); p != nil {
			i.log.ErrorContext(ctx, "Recovered panic while ingesting message",
				"panic", p,
				"topic", topic,
				"raw", string(payload),
			)
			i.count(metrics.OutcomePersistError)
			err = fmt.Errorf("%s:%w: panic: %v", fn, ErrPersist, p)
		}
	}()

	env, err := message.Decode(payload)
	if err != nil {
		i.log.WarnContext(ctx, "Dropping undecodable message",
			"error", err,
			"topic", topic,
			"raw", string(payload),
		)
		i.count(metrics.OutcomeDecodeError)
		return fmt.Errorf("%s:%w", fn, err)
	}

	kind, err := message.Classify(env)
	switch {
	case errors.Is(err, message.ErrUnhandledMsgType):
		i.log.InfoContext(ctx, "Ignoring unhandled message type",
			"device_id", env.HardwareSerial,
			"counter", env.Counter,
			"msgtype", env.MsgType,
		)
		i.count(metrics.OutcomeUnhandled)
		return fmt.Errorf("%s:%w", fn, err)
	case errors.Is(err, message.ErrUnsupportedUplink):
		i.log.WarnContext(ctx, "Unsupported uplink sub-event",
			"error", err,
			"device_id", env.HardwareSerial,
			"counter", env.Counter,
		)
		i.count(metrics.OutcomeUnsupported)
		return fmt.Errorf("%s:%w", fn, err)
	case err != nil:
		i.log.WarnContext(ctx, "Dropping incomplete message",
			"error", err,
			"topic", topic,
			"raw", string(payload),
		)
		i.count(metrics.OutcomeDecodeError)
		return fmt.Errorf("%s:%w", fn, err)
	}

	start := time.Now()
	device, event, err := i.persister.Persist(ctx, kind, env)
	i.metrics.PersistSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		i.log.ErrorContext(ctx, "Failed to persist event",
			"error", err,
			"kind", kind,
			"device_id", env.HardwareSerial,
			"counter", env.Counter,
			"raw", string(payload),
		)
		i.count(metrics.OutcomePersistError)
		return fmt.Errorf("%s:%w:%w", fn, ErrPersist, err)
	}
	i.count(metrics.OutcomePersisted)
	i.log.DebugContext(ctx, "Persisted event",
		"event_id", event.ID,
		"kind", kind,
		"device_id", device.ID,
		"counter", event.Counter,
	)

	for _, m := range i.mirrors {
		if err := m.Mirror(ctx, device, event); err != nil {
			i.metrics.MirrorErrors.WithLabelValues(m.Name()).Inc()
			i.log.WarnContext(ctx, "Mirror write failed", "mirror", m.Name(), "error", err, "event_id", event.ID)
		}
	}
	return nil
}

func (i *Ingester) count(outcome string) {
	i.metrics.MessagesTotal.WithLabelValues(outcome).Inc()
}

func (i *Ingester) OnConnect(ctx context.Context) {
	i.log.InfoContext(ctx, "Connected to broker")
	i.recordConnection(ctx, model.ConnectionConnected, "")
}

func (i *Ingester) OnDisconnect(ctx context.Context, reason string) {
	i.log.WarnContext(ctx, "Connection to broker lost", "reason", reason)
	i.recordConnection(ctx, model.ConnectionLost, reason)
}

func (i *Ingester) recordConnection(ctx context.Context, state model.ConnectionState, reason string) {
	i.metrics.ConnectionsTotal.WithLabelValues(string(state)).Inc()
	if i.connections == nil {
		return
	}
	ev := &model.ConnectionEvent{State: state, Reason: reason, OccurredAt: time.Now().UTC()}
	if err := i.connections.InsertConnectionEvent(ctx, ev); err != nil {
		i.log.ErrorContext(ctx, "Failed to record connection event", "state", state, "error", err)
	}
}
