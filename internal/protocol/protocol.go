// Package protocol holds the message taxonomy of the temperature/humidity
// sensors: the top-level message types and the uplink sub-event types.
package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownMsgType     = errors.New("unknown message type")
	ErrUnknownSensorEvent = errors.New("unknown sensor event type")
)

// MsgType is the top-level message type carried in payload_fields.msgtype.
type MsgType int

const (
	MsgReset       MsgType = 0x00
	MsgSupervisory MsgType = 0x01
	MsgTamper      MsgType = 0x02
	MsgUplink      MsgType = 0x0D
	MsgLinkQuality MsgType = 0xFB
	MsgAck         MsgType = 0xFE
)

type descriptor struct {
	name        string
	description string
}

var msgTypes = map[MsgType]descriptor{
	MsgReset:       {"RESET", "Reset"},
	MsgSupervisory: {"SUPERVISORY", "Supervisory"},
	MsgTamper:      {"TAMPER", "Tamper Event has occurred"},
	MsgUplink:      {"UPLINK", "Temperature Event"},
	MsgLinkQuality: {"LINK_QUALITY", "Link Quality sent after each downlink configuration change"},
	MsgAck:         {"ACK", "Downlink message acknowledgement"},
}

// ParseMsgType converts a wire code into a MsgType. Codes outside the table
// fail with ErrUnknownMsgType.
func ParseMsgType(code int) (MsgType, error) {
	const fn = "Protocol:ParseMsgType"
	mt := MsgType(code)
	if _, ok := msgTypes[mt]; !ok {
		return 0, fmt.Errorf("%s:%w: %d", fn, ErrUnknownMsgType, code)
	}
	return mt, nil
}

func (m MsgType) Code() int { return int(m) }

func (m MsgType) String() string {
	if d, ok := msgTypes[m]; ok {
		return d.name
	}
	return fmt.Sprintf("MsgType(%d)", int(m))
}

func (m MsgType) Description() string {
	return msgTypes[m].description
}

// SensorEventType is the UPLINK sub-event carried in
// payload_fields.sensor_event_type.
type SensorEventType int

const (
	EventPeriodic SensorEventType = iota
	EventTempAboveUpper
	EventTempBelowLower
	EventTempChangeIncrease
	EventTempChangeDecrease
	EventHmdAboveUpper
	EventHmdBelowLower
	EventHmdChangeIncrease
	EventHmdChangeDecrease
)

var sensorEvents = map[SensorEventType]descriptor{
	EventPeriodic:           {"PERIODIC", "Periodic Report"},
	EventTempAboveUpper:     {"TEMP_ABOVE_UPPER", "Temperature above upper threshold"},
	EventTempBelowLower:     {"TEMP_BELOW_LOWER", "Temperature below lower threshold"},
	EventTempChangeIncrease: {"TEMP_CHANGE_INCREASE", "Temp report on change increase"},
	EventTempChangeDecrease: {"TEMP_CHANGE_DECREASE", "Temp report on change decrease"},
	EventHmdAboveUpper:      {"HMD_ABOVE_UPPER", "Humidity above upper threshold"},
	EventHmdBelowLower:      {"HMD_BELOW_LOWER", "Humidity below lower threshold"},
	EventHmdChangeIncrease:  {"HMD_CHANGE_INCREASE", "Humidity report on change increase"},
	EventHmdChangeDecrease:  {"HMD_CHANGE_DECREASE", "Humidity report on change decrease"},
}

// ParseSensorEventType converts a wire code into a SensorEventType. Codes
// outside the table fail with ErrUnknownSensorEvent.
func ParseSensorEventType(code int) (SensorEventType, error) {
	const fn = "Protocol:ParseSensorEventType"
	et := SensorEventType(code)
	if _, ok := sensorEvents[et]; !ok {
		return 0, fmt.Errorf("%s:%w: %d", fn, ErrUnknownSensorEvent, code)
	}
	return et, nil
}

func (e SensorEventType) Code() int { return int(e) }

func (e SensorEventType) String() string {
	if d, ok := sensorEvents[e]; ok {
		return d.name
	}
	return fmt.Sprintf("SensorEventType(%d)", int(e))
}

func (e SensorEventType) Description() string {
	return sensorEvents[e].description
}
