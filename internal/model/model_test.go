package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewMeasurement(t *testing.T) {
	ts := time.Date(2020, 10, 4, 18, 57, 51, 159517000, time.UTC)

	ev, err := NewMeasurement("A81758FFFE0312D4", ts, 7, []byte(`{}`), 21.5, 40.25)
	require.NoError(t, err)
	assert.Equal(t, KindMeasurement, ev.Kind)
	assert.Equal(t, 21.5, *ev.TempC)
	assert.Equal(t, 40.25, *ev.HumidityPercent)

	_, err = NewMeasurement("A81758FFFE0312D4", ts.In(time.FixedZone("CEST", 2*3600)), 7, nil, 21.5, 40.25)
	assert.ErrorIs(t, err, ErrNonUTCTimestamp)
}

func Test_Validate(t *testing.T) {
	ts := time.Date(2020, 10, 4, 18, 57, 51, 0, time.UTC)
	temp := 20.0

	cases := []struct {
		name        string
		event       Event
		expectedErr error
	}{
		{
			name:  "supervisory",
			event: Event{Kind: KindSupervisory, DeviceID: "dev", Timestamp: ts},
		},
		{
			name:        "naive local time",
			event:       Event{Kind: KindSupervisory, DeviceID: "dev", Timestamp: time.Date(2020, 1, 1, 0, 0, 0, 0, time.Local)},
			expectedErr: ErrNonUTCTimestamp,
		},
		{
			name:        "zero time",
			event:       Event{Kind: KindSupervisory, DeviceID: "dev"},
			expectedErr: ErrNonUTCTimestamp,
		},
		{
			name:        "measurement missing humidity",
			event:       Event{Kind: KindMeasurement, DeviceID: "dev", Timestamp: ts, TempC: &temp},
			expectedErr: ErrInvalidEvent,
		},
		{
			name:        "supervisory with reading",
			event:       Event{Kind: KindSupervisory, DeviceID: "dev", Timestamp: ts, TempC: &temp},
			expectedErr: ErrInvalidEvent,
		},
		{
			name:        "unknown kind",
			event:       Event{Kind: "tamper", DeviceID: "dev", Timestamp: ts},
			expectedErr: ErrInvalidEvent,
		},
		{
			name:        "missing device",
			event:       Event{Kind: KindLinkQuality, Timestamp: ts},
			expectedErr: ErrInvalidEvent,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.expectedErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}
