package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNonUTCTimestamp = errors.New("timestamp is not in UTC")
	ErrInvalidEvent    = errors.New("invalid event")
)

type EventKind string

const (
	KindMeasurement EventKind = "measurement"
	KindSupervisory EventKind = "supervisory"
	KindLinkQuality EventKind = "link_quality"
)

func (k EventKind) Valid() bool {
	switch k {
	case KindMeasurement, KindSupervisory, KindLinkQuality:
		return true
	}
	return false
}

// Device is a sensor known by its hardware serial. DisplayName is the
// human-assigned name and may be empty.
type Device struct {
	ID          string `db:"device_id" json:"device_id"`
	DisplayName string `db:"display_name" json:"display_name"`
}

// Event is one persisted sensor report. Kind selects the variant: only
// measurement events carry TempC and HumidityPercent.
type Event struct {
	ID              int64     `db:"id" json:"id"`
	Kind            EventKind `db:"kind" json:"kind"`
	DeviceID        string    `db:"device_id" json:"device_id"`
	Timestamp       time.Time `db:"timestamp" json:"timestamp"`
	Counter         int64     `db:"counter" json:"counter"`
	RawPayload      []byte    `db:"raw_payload" json:"-"`
	TempC           *float64  `db:"temp_c" json:"temp_c,omitempty"`
	HumidityPercent *float64  `db:"humidity_percent" json:"humidity_percent,omitempty"`
}

func NewMeasurement(deviceID string, ts time.Time, counter int64, raw []byte, tempC, humidity float64) (Event, error) {
	ev := Event{
		Kind:            KindMeasurement,
		DeviceID:        deviceID,
		Timestamp:       ts,
		Counter:         counter,
		RawPayload:      raw,
		TempC:           &tempC,
		HumidityPercent: &humidity,
	}
	return ev, ev.Validate()
}

func NewSupervisory(deviceID string, ts time.Time, counter int64, raw []byte) (Event, error) {
	ev := Event{Kind: KindSupervisory, DeviceID: deviceID, Timestamp: ts, Counter: counter, RawPayload: raw}
	return ev, ev.Validate()
}

func NewLinkQuality(deviceID string, ts time.Time, counter int64, raw []byte) (Event, error) {
	ev := Event{Kind: KindLinkQuality, DeviceID: deviceID, Timestamp: ts, Counter: counter, RawPayload: raw}
	return ev, ev.Validate()
}

// Validate checks the variant shape and that the timestamp is UTC.
func (e Event) Validate() error {
	const fn = "Model:Event.Validate"
	if err := RequireUTC(e.Timestamp); err != nil {
		return fmt.Errorf("%s:%w", fn, err)
	}
	if e.DeviceID == "" {
		return fmt.Errorf("%s:%w: empty device id", fn, ErrInvalidEvent)
	}
	if !e.Kind.Valid() {
		return fmt.Errorf("%s:%w: unknown kind %q", fn, ErrInvalidEvent, e.Kind)
	}
	hasReadings := e.TempC != nil && e.HumidityPercent != nil
	anyReading := e.TempC != nil || e.HumidityPercent != nil
	if e.Kind == KindMeasurement && !hasReadings {
		return fmt.Errorf("%s:%w: measurement without readings", fn, ErrInvalidEvent)
	}
	if e.Kind != KindMeasurement && anyReading {
		return fmt.Errorf("%s:%w: %s carries readings", fn, ErrInvalidEvent, e.Kind)
	}
	return nil
}

// RequireUTC rejects zero times and times whose location is not time.UTC.
func RequireUTC(ts time.Time) error {
	if ts.IsZero() || ts.Location() != time.UTC {
		return fmt.Errorf("%w: %s", ErrNonUTCTimestamp, ts.Format(time.RFC3339Nano))
	}
	return nil
}

type ConnectionState string

const (
	ConnectionConnected ConnectionState = "connected"
	ConnectionLost      ConnectionState = "lost"
)

// ConnectionEvent records a transport connect or disconnect.
type ConnectionEvent struct {
	ID         int64           `db:"id" json:"id"`
	State      ConnectionState `db:"state" json:"state"`
	Reason     string          `db:"reason" json:"reason"`
	OccurredAt time.Time       `db:"occurred_at" json:"occurred_at"`
}
