package ingest

import (
	"context"
	"fmt"

	"ttn-th-ingest/internal/db"
	"ttn-th-ingest/internal/message"
	"ttn-th-ingest/internal/model"
)

type store interface {
	WithTx(ctx context.Context, work func(db.Tx) error) error
}

// Persister writes one classified message and its device in a single
// transaction.
type Persister struct {
	store store
}

func NewPersister(s store) *Persister {
	return &Persister{store: s}
}

func (p *Persister) Persist(ctx context.Context, kind model.EventKind, env message.Envelope) (model.Device, model.Event, error) {
	const fn = "Persister:Persist"
	event, err := buildEvent(kind, env)
	if err != nil {
		return model.Device{}, model.Event{}, fmt.Errorf("%s:%w", fn, err)
	}

	var device model.Device
	err = p.store.WithTx(ctx, func(tx db.Tx) error {
		d, err := tx.GetOrCreateDevice(ctx, env.HardwareSerial, env.DeviceName)
		if err != nil {
			return err
		}
		device = d
		return tx.InsertEvent(ctx, &event)
	})
	if err != nil {
		return model.Device{}, model.Event{}, fmt.Errorf("%s:%w", fn, err)
	}
	return device, event, nil
}

func buildEvent(kind model.EventKind, env message.Envelope) (model.Event, error) {
	switch kind {
	case model.KindMeasurement:
		if env.TempC == nil || env.HumidityPercent == nil {
			return model.Event{}, fmt.Errorf("%w: measurement without readings", model.ErrInvalidEvent)
		}
		return model.NewMeasurement(env.HardwareSerial, env.Time, env.Counter, env.Raw, *env.TempC, *env.HumidityPercent)
	case model.KindSupervisory:
		return model.NewSupervisory(env.HardwareSerial, env.Time, env.Counter, env.Raw)
	case model.KindLinkQuality:
		return model.NewLinkQuality(env.HardwareSerial, env.Time, env.Counter, env.Raw)
	default:
		return model.Event{}, fmt.Errorf("%w: unknown kind %q", model.ErrInvalidEvent, kind)
	}
}
