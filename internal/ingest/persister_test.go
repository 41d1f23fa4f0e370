package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"ttn-th-ingest/internal/db"
	"ttn-th-ingest/internal/message"
	"ttn-th-ingest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func measurementEnvelope() message.Envelope {
	return message.Envelope{
		HardwareSerial:  "A81758FFFE0312D4",
		DeviceName:      "office-th-1",
		Counter:         5,
		Time:            time.Date(2020, 10, 4, 18, 57, 51, 159517000, time.UTC),
		MsgType:         0x0D,
		TempC:           floatPtr(21.5),
		HumidityPercent: floatPtr(41),
		Raw:             []byte(`{"counter":5}`),
	}
}

// runsWork makes the store invoke the unit of work with tx, like a real
// transaction would.
func runsWork(tx db.Tx) func(context.Context, func(db.Tx) error) error {
	return func(_ context.Context, work func(db.Tx) error) error {
		return work(tx)
	}
}

func Test_Persist(t *testing.T) {
	errInsert := errors.New("insert failed")
	device := model.Device{ID: "A81758FFFE0312D4", DisplayName: "office-th-1"}

	cases := []struct {
		name        string
		kind        model.EventKind
		env         message.Envelope
		setupStore  func() store
		expectedErr error
	}{
		{
			name: "measurement stored with device",
			kind: model.KindMeasurement,
			env:  measurementEnvelope(),
			setupStore: func() store {
				tx := db.NewMockTx(t)
				tx.EXPECT().GetOrCreateDevice(mock.Anything, "A81758FFFE0312D4", "office-th-1").Return(device, nil)
				tx.EXPECT().InsertEvent(mock.Anything, mock.MatchedBy(func(ev *model.Event) bool {
					return ev.Kind == model.KindMeasurement &&
						ev.DeviceID == "A81758FFFE0312D4" &&
						ev.Counter == 5 &&
						*ev.TempC == 21.5 &&
						*ev.HumidityPercent == 41 &&
						string(ev.RawPayload) == `{"counter":5}`
				})).RunAndReturn(func(_ context.Context, ev *model.Event) error {
					ev.ID = 101
					return nil
				})
				s := NewMockstore(t)
				s.EXPECT().WithTx(mock.Anything, mock.Anything).RunAndReturn(runsWork(tx))
				return s
			},
		},
		{
			name: "supervisory stored without readings",
			kind: model.KindSupervisory,
			env: message.Envelope{
				HardwareSerial: "A81758FFFE0312D4",
				Counter:        6,
				Time:           time.Date(2020, 10, 4, 19, 0, 0, 0, time.UTC),
				MsgType:        1,
				Raw:            []byte(`{}`),
			},
			setupStore: func() store {
				tx := db.NewMockTx(t)
				tx.EXPECT().GetOrCreateDevice(mock.Anything, "A81758FFFE0312D4", "").Return(device, nil)
				tx.EXPECT().InsertEvent(mock.Anything, mock.MatchedBy(func(ev *model.Event) bool {
					return ev.Kind == model.KindSupervisory && ev.TempC == nil && ev.HumidityPercent == nil
				})).Return(nil)
				s := NewMockstore(t)
				s.EXPECT().WithTx(mock.Anything, mock.Anything).RunAndReturn(runsWork(tx))
				return s
			},
		},
		{
			name: "insert failure surfaces",
			kind: model.KindMeasurement,
			env:  measurementEnvelope(),
			setupStore: func() store {
				tx := db.NewMockTx(t)
				tx.EXPECT().GetOrCreateDevice(mock.Anything, mock.Anything, mock.Anything).Return(device, nil)
				tx.EXPECT().InsertEvent(mock.Anything, mock.Anything).Return(errInsert)
				s := NewMockstore(t)
				s.EXPECT().WithTx(mock.Anything, mock.Anything).RunAndReturn(runsWork(tx))
				return s
			},
			expectedErr: errInsert,
		},
		{
			name: "device failure skips insert",
			kind: model.KindMeasurement,
			env:  measurementEnvelope(),
			setupStore: func() store {
				tx := db.NewMockTx(t)
				tx.EXPECT().GetOrCreateDevice(mock.Anything, mock.Anything, mock.Anything).Return(model.Device{}, db.ErrSelectFailed)
				s := NewMockstore(t)
				s.EXPECT().WithTx(mock.Anything, mock.Anything).RunAndReturn(runsWork(tx))
				return s
			},
			expectedErr: db.ErrSelectFailed,
		},
		{
			name: "non-utc timestamp never reaches the store",
			kind: model.KindSupervisory,
			env: message.Envelope{
				HardwareSerial: "A81758FFFE0312D4",
				Time:           time.Date(2020, 10, 4, 19, 0, 0, 0, time.FixedZone("CET", 3600)),
				Raw:            []byte(`{}`),
			},
			setupStore: func() store {
				return NewMockstore(t)
			},
			expectedErr: model.ErrNonUTCTimestamp,
		},
		{
			name: "measurement without readings",
			kind: model.KindMeasurement,
			env: message.Envelope{
				HardwareSerial: "A81758FFFE0312D4",
				Time:           time.Date(2020, 10, 4, 19, 0, 0, 0, time.UTC),
				TempC:          floatPtr(3),
			},
			setupStore: func() store {
				return NewMockstore(t)
			},
			expectedErr: model.ErrInvalidEvent,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPersister(tt.setupStore())
			gotDevice, gotEvent, err := p.Persist(context.Background(), tt.kind, tt.env)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, device, gotDevice)
			assert.Equal(t, tt.kind, gotEvent.Kind)
			assert.Equal(t, tt.env.Time, gotEvent.Timestamp)
		})
	}
}
