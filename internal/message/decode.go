// Package message turns raw uplink deliveries into typed envelopes and
// decides which persisted event kind, if any, each one becomes.
package message

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrMalformedPayload   = errors.New("malformed payload")
	ErrMissingField       = errors.New("missing required field")
	ErrInvalidField       = errors.New("invalid field value")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
)

// Envelope is a decoded uplink. Optional payload fields stay nil when the
// device did not send them.
type Envelope struct {
	HardwareSerial  string
	DeviceName      string
	Counter         int64
	Time            time.Time
	MsgType         int
	SensorEventType *int
	TempC           *float64
	HumidityPercent *float64
	Raw             []byte
}

// DecodeError is returned by Decode for any input it cannot turn into an
// Envelope. Raw holds the offending bytes for logging.
type DecodeError struct {
	Raw []byte
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode uplink: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type wireMetadata struct {
	Time *string `json:"time"`
}

type wirePayloadFields struct {
	MsgType         *int     `json:"msgtype"`
	SensorEventType *int     `json:"sensor_event_type"`
	TempC           *float64 `json:"temp_c"`
	HumidityPercent *float64 `json:"humidity_percent"`
}

type wireEnvelope struct {
	HardwareSerial string             `json:"hardware_serial"`
	DevID          string             `json:"dev_id"`
	Counter        *int64             `json:"counter"`
	Metadata       *wireMetadata      `json:"metadata"`
	PayloadFields  *wirePayloadFields `json:"payload_fields"`
}

// Decode parses one uplink body. The returned envelope keeps its own copy
// of raw.
func Decode(raw []byte) (Envelope, error) {
	const fn = "Message:Decode"
	fail := func(sentinel error, detail any) (Envelope, error) {
		return Envelope{}, &DecodeError{
			Raw: raw,
			Err: fmt.Errorf("%s:%w: %v", fn, sentinel, detail),
		}
	}

	var w wireEnvelope
	if err := json.Unmarshal(raw, &w); err != nil {
		return fail(ErrMalformedPayload, err)
	}
	switch {
	case w.HardwareSerial == "":
		return fail(ErrMissingField, "hardware_serial")
	case w.Counter == nil:
		return fail(ErrMissingField, "counter")
	case w.Metadata == nil || w.Metadata.Time == nil:
		return fail(ErrMissingField, "metadata.time")
	case w.PayloadFields == nil || w.PayloadFields.MsgType == nil:
		return fail(ErrMissingField, "payload_fields.msgtype")
	case *w.Counter < 0:
		return fail(ErrInvalidField, fmt.Sprintf("counter %d", *w.Counter))
	}

	ts, err := ParseTimestamp(*w.Metadata.Time)
	if err != nil {
		return fail(ErrMalformedTimestamp, err)
	}

	pf := w.PayloadFields
	return Envelope{
		HardwareSerial:  w.HardwareSerial,
		DeviceName:      w.DevID,
		Counter:         *w.Counter,
		Time:            ts,
		MsgType:         *pf.MsgType,
		SensorEventType: pf.SensorEventType,
		TempC:           pf.TempC,
		HumidityPercent: pf.HumidityPercent,
		Raw:             bytes.Clone(raw),
	}, nil
}

// ParseTimestamp accepts RFC 3339 with optional fractional seconds and a
// mandatory zone designator. The result is in UTC, truncated to the
// microsecond precision the event store keeps.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC().Truncate(time.Microsecond), nil
}
