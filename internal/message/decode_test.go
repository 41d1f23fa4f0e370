package message

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const periodicUplink = `{"app_id":"th-sensors","dev_id":"office-th-1","hardware_serial":"A81758FFFE0312D4","port":1,"counter":1042,` +
	`"payload_raw":"DQAQABE=","payload_fields":{"msgtype":13,"sensor_event_type":0,"temp_c":21.5,"humidity_percent":41},` +
	`"metadata":{"time":"2020-10-04T18:57:51.159517Z","frequency":868.1}}`

func Test_Decode(t *testing.T) {
	env, err := Decode([]byte(periodicUplink))
	require.NoError(t, err)

	assert.Equal(t, "A81758FFFE0312D4", env.HardwareSerial)
	assert.Equal(t, "office-th-1", env.DeviceName)
	assert.Equal(t, int64(1042), env.Counter)
	assert.Equal(t, 13, env.MsgType)
	require.NotNil(t, env.SensorEventType)
	assert.Equal(t, 0, *env.SensorEventType)
	require.NotNil(t, env.TempC)
	assert.Equal(t, 21.5, *env.TempC)
	require.NotNil(t, env.HumidityPercent)
	assert.Equal(t, 41.0, *env.HumidityPercent)
	assert.Equal(t, time.Date(2020, 10, 4, 18, 57, 51, 159517000, time.UTC), env.Time)
	assert.Same(t, time.UTC, env.Time.Location())
	assert.Equal(t, []byte(periodicUplink), env.Raw)
}

func Test_DecodeOptionalFieldsAbsent(t *testing.T) {
	raw := `{"hardware_serial":"A81758FFFE0312D5","counter":3,"metadata":{"time":"2020-10-04T19:00:00Z"},"payload_fields":{"msgtype":1}}`

	env, err := Decode([]byte(raw))
	require.NoError(t, err)
	assert.Empty(t, env.DeviceName)
	assert.Nil(t, env.SensorEventType)
	assert.Nil(t, env.TempC)
	assert.Nil(t, env.HumidityPercent)
}

func Test_DecodeErrors(t *testing.T) {
	cases := []struct {
		name        string
		input       string
		expectedErr error
	}{
		{name: "truncated json", input: `{"hardware_serial":"A8175`, expectedErr: ErrMalformedPayload},
		{name: "not an object", input: `[1,2,3]`, expectedErr: ErrMalformedPayload},
		{name: "empty", input: ``, expectedErr: ErrMalformedPayload},
		{name: "msgtype not a number", input: `{"hardware_serial":"X","counter":1,"metadata":{"time":"2020-10-04T18:57:51Z"},"payload_fields":{"msgtype":"13"}}`, expectedErr: ErrMalformedPayload},
		{name: "missing hardware serial", input: `{"counter":1,"metadata":{"time":"2020-10-04T18:57:51Z"},"payload_fields":{"msgtype":13}}`, expectedErr: ErrMissingField},
		{name: "missing counter", input: `{"hardware_serial":"X","metadata":{"time":"2020-10-04T18:57:51Z"},"payload_fields":{"msgtype":13}}`, expectedErr: ErrMissingField},
		{name: "missing metadata", input: `{"hardware_serial":"X","counter":1,"payload_fields":{"msgtype":13}}`, expectedErr: ErrMissingField},
		{name: "missing payload fields", input: `{"hardware_serial":"X","counter":1,"metadata":{"time":"2020-10-04T18:57:51Z"}}`, expectedErr: ErrMissingField},
		{name: "missing msgtype", input: `{"hardware_serial":"X","counter":1,"metadata":{"time":"2020-10-04T18:57:51Z"},"payload_fields":{}}`, expectedErr: ErrMissingField},
		{name: "negative counter", input: `{"hardware_serial":"X","counter":-1,"metadata":{"time":"2020-10-04T18:57:51Z"},"payload_fields":{"msgtype":13}}`, expectedErr: ErrInvalidField},
		{name: "naive timestamp", input: `{"hardware_serial":"X","counter":1,"metadata":{"time":"2020-10-04T18:57:51.159517"},"payload_fields":{"msgtype":13}}`, expectedErr: ErrMalformedTimestamp},
		{name: "garbage timestamp", input: `{"hardware_serial":"X","counter":1,"metadata":{"time":"yesterday"},"payload_fields":{"msgtype":13}}`, expectedErr: ErrMalformedTimestamp},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			assert.ErrorIs(t, err, tt.expectedErr)

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, []byte(tt.input), decodeErr.Raw)
		})
	}
}

func Test_ParseTimestamp(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{name: "zulu with micros", input: "2020-10-04T18:57:51.159517Z", expected: time.Date(2020, 10, 4, 18, 57, 51, 159517000, time.UTC)},
		{name: "zulu without fraction", input: "2020-10-04T18:57:51Z", expected: time.Date(2020, 10, 4, 18, 57, 51, 0, time.UTC)},
		{name: "nanos truncated", input: "2020-10-04T18:57:51.159517999Z", expected: time.Date(2020, 10, 4, 18, 57, 51, 159517000, time.UTC)},
		{name: "offset converted", input: "2020-10-04T20:57:51.5+02:00", expected: time.Date(2020, 10, 4, 18, 57, 51, 500000000, time.UTC)},
		{name: "no zone", input: "2020-10-04T18:57:51", wantErr: true},
		{name: "date only", input: "2020-10-04", wantErr: true},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got))
			assert.Same(t, time.UTC, got.Location())
		})
	}
}

func Test_ParseTopic(t *testing.T) {
	topic, err := ParseTopic("th-sensors/devices/office-th-1/up")
	require.NoError(t, err)
	assert.Equal(t, Topic{AppID: "th-sensors", DeviceID: "office-th-1"}, topic)
	assert.Equal(t, "th-sensors/devices/office-th-1/up", topic.String())

	for _, bad := range []string{"", "th-sensors/devices/office-th-1/down", "a/b/c/up", "/devices//up", "th-sensors/devices/x/up/extra"} {
		_, err := ParseTopic(bad)
		assert.ErrorIs(t, err, ErrUnexpectedTopic, bad)
	}
}
