package message

import (
	"errors"
	"fmt"

	"ttn-th-ingest/internal/model"
	"ttn-th-ingest/internal/protocol"
)

var (
	ErrUnsupportedUplink = errors.New("unsupported uplink sub-event")
	ErrUnhandledMsgType  = errors.New("unhandled message type")
	ErrMissingReading    = errors.New("measurement without temperature or humidity")
)

// measurementEvents are the uplink sub-events stored as measurements.
var measurementEvents = map[protocol.SensorEventType]bool{
	protocol.EventPeriodic:           true,
	protocol.EventTempChangeIncrease: true,
	protocol.EventTempChangeDecrease: true,
	protocol.EventHmdChangeIncrease:  true,
	protocol.EventHmdChangeDecrease:  true,
}

// Classify maps an envelope to the event kind it is stored as. Messages that
// are not stored return ErrUnhandledMsgType or ErrUnsupportedUplink.
func Classify(env Envelope) (model.EventKind, error) {
	const fn = "Message:Classify"
	mt, err := protocol.ParseMsgType(env.MsgType)
	if err != nil {
		return "", fmt.Errorf("%s:%w:%w", fn, ErrUnhandledMsgType, err)
	}

	switch mt {
	case protocol.MsgSupervisory:
		return model.KindSupervisory, nil
	case protocol.MsgUplink:
		if env.SensorEventType == nil {
			return "", fmt.Errorf("%s:%w: sensor_event_type absent", fn, ErrUnsupportedUplink)
		}
		et, err := protocol.ParseSensorEventType(*env.SensorEventType)
		if err != nil {
			return "", fmt.Errorf("%s:%w:%w", fn, ErrUnsupportedUplink, err)
		}
		if !measurementEvents[et] {
			return "", fmt.Errorf("%s:%w: %s", fn, ErrUnsupportedUplink, et)
		}
		if env.TempC == nil || env.HumidityPercent == nil {
			return "", fmt.Errorf("%s:%w: %s", fn, ErrMissingReading, et)
		}
		return model.KindMeasurement, nil
	default:
		return "", fmt.Errorf("%s:%w: %s", fn, ErrUnhandledMsgType, mt)
	}
}
