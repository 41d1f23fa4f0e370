package db_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"ttn-th-ingest/internal/db"
	"ttn-th-ingest/internal/gaps"
	"ttn-th-ingest/internal/ingest"
	"ttn-th-ingest/internal/message"
	"ttn-th-ingest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtureDevices = map[string]string{
	"A81758FFFE0312D4": "office-th-1",
	"A81758FFFE0312D5": "lab-th-2",
	"A81758FFFE0312D6": "cellar-th-3",
}

func Test_MixedStreamPipeline(t *testing.T) {
	ctx := context.Background()
	raw, err := os.ReadFile("testdata/mixed_stream.jsonl")
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(raw), []byte("\n"))
	require.Len(t, lines, 10)

	var logs bytes.Buffer
	ing := ingest.New(ingest.Config{
		Persister:   ingest.NewPersister(db.DBPool),
		Connections: db.DBPool,
		Logger:      slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})

	for _, line := range lines {
		require.NoError(t, ing.HandleMessage(ctx, "th-sensors/devices/any/up", line))
	}
	assert.Zero(t, strings.Count(logs.String(), "Unsupported uplink sub-event"))
	assert.Zero(t, strings.Count(logs.String(), `"level":"WARN"`))

	devices, err := db.DBPool.LoadDevices(ctx)
	require.NoError(t, err)
	found := 0
	for _, d := range devices {
		if name, ok := fixtureDevices[d.ID]; ok {
			found++
			assert.Equal(t, name, d.DisplayName)
		}
	}
	assert.Equal(t, 3, found)

	var measurements, supervisory int
	for id := range fixtureDevices {
		events, err := db.DBPool.LoadEventsByCounter(ctx, id, "")
		require.NoError(t, err)
		for _, ev := range events {
			switch ev.Kind {
			case model.KindMeasurement:
				measurements++
			case model.KindSupervisory:
				supervisory++
			}
		}
	}
	assert.Equal(t, 9, measurements)
	assert.Equal(t, 1, supervisory)

	office, err := db.DBPool.LoadEventsByCounter(ctx, "A81758FFFE0312D4", "")
	require.NoError(t, err)
	require.Len(t, office, 5)
	first, err := message.Decode(lines[0])
	require.NoError(t, err)
	assert.Equal(t, lines[0], office[0].RawPayload)
	assert.True(t, first.Time.Equal(office[0].Timestamp))
	assert.Equal(t, *first.TempC, *office[0].TempC)
	assert.Empty(t, gaps.FindGaps("A81758FFFE0312D4", office))

	lab, err := db.DBPool.LoadEventsByCounter(ctx, "A81758FFFE0312D5", "")
	require.NoError(t, err)
	labGaps := gaps.FindGaps("A81758FFFE0312D5", lab)
	require.Len(t, labGaps, 1)
	assert.Equal(t, int64(2), labGaps[0].GapSize)
	assert.Equal(t, int64(1), labGaps[0].RunLength)
	assert.Equal(t, int64(11), labGaps[0].Before.Counter)
	assert.Equal(t, int64(13), labGaps[0].After.Counter)

	// Redelivery of an already stored message is kept as a second row.
	require.NoError(t, ing.HandleMessage(ctx, "th-sensors/devices/any/up", lines[0]))
	office, err = db.DBPool.LoadEventsByCounter(ctx, "A81758FFFE0312D4", model.KindMeasurement)
	require.NoError(t, err)
	assert.Len(t, office, 5)
	assert.Equal(t, office[0].Counter, office[1].Counter)
}
