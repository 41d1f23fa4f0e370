package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseMsgType(t *testing.T) {
	cases := []struct {
		name                string
		inputCode           int
		expectedType        MsgType
		expectedName        string
		expectedDescription string
		expectedErr         error
	}{
		{name: "reset", inputCode: 0, expectedType: MsgReset, expectedName: "RESET", expectedDescription: "Reset"},
		{name: "supervisory", inputCode: 1, expectedType: MsgSupervisory, expectedName: "SUPERVISORY", expectedDescription: "Supervisory"},
		{name: "tamper", inputCode: 2, expectedType: MsgTamper, expectedName: "TAMPER", expectedDescription: "Tamper Event has occurred"},
		{name: "uplink", inputCode: 0x0D, expectedType: MsgUplink, expectedName: "UPLINK", expectedDescription: "Temperature Event"},
		{name: "link quality", inputCode: 0xFB, expectedType: MsgLinkQuality, expectedName: "LINK_QUALITY", expectedDescription: "Link Quality sent after each downlink configuration change"},
		{name: "ack", inputCode: 0xFE, expectedType: MsgAck, expectedName: "ACK", expectedDescription: "Downlink message acknowledgement"},
		{name: "unknown code", inputCode: 3, expectedErr: ErrUnknownMsgType},
		{name: "negative code", inputCode: -1, expectedErr: ErrUnknownMsgType},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			mt, err := ParseMsgType(tt.inputCode)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedType, mt)
			assert.Equal(t, tt.inputCode, mt.Code())
			assert.Equal(t, tt.expectedName, mt.String())
			assert.Equal(t, tt.expectedDescription, mt.Description())
		})
	}
}

func Test_ParseSensorEventType(t *testing.T) {
	descriptions := []string{
		"Periodic Report",
		"Temperature above upper threshold",
		"Temperature below lower threshold",
		"Temp report on change increase",
		"Temp report on change decrease",
		"Humidity above upper threshold",
		"Humidity below lower threshold",
		"Humidity report on change increase",
		"Humidity report on change decrease",
	}
	for code, want := range descriptions {
		et, err := ParseSensorEventType(code)
		require.NoError(t, err)
		assert.Equal(t, code, et.Code())
		assert.Equal(t, want, et.Description())
	}

	_, err := ParseSensorEventType(9)
	assert.ErrorIs(t, err, ErrUnknownSensorEvent)
	_, err = ParseSensorEventType(-4)
	assert.ErrorIs(t, err, ErrUnknownSensorEvent)
}

func Test_StringUnknown(t *testing.T) {
	assert.Equal(t, "MsgType(99)", MsgType(99).String())
	assert.Equal(t, "SensorEventType(42)", SensorEventType(42).String())
	assert.Equal(t, "HMD_CHANGE_DECREASE", EventHmdChangeDecrease.String())
}
