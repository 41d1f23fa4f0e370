package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"ttn-th-ingest/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseLevel(t *testing.T) {
	cases := []struct {
		input    string
		expected slog.Level
	}{
		{input: "debug", expected: slog.LevelDebug},
		{input: "INFO", expected: slog.LevelInfo},
		{input: "warn", expected: slog.LevelWarn},
		{input: "warning", expected: slog.LevelWarn},
		{input: "error", expected: slog.LevelError},
		{input: "", expected: slog.LevelInfo},
		{input: "verbose", expected: slog.LevelInfo},
	}

	for _, tt := range cases {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func Test_newLoggerJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newLogger(buf, config.LoggingConfig{Level: "warn", Format: "json"})

	logger.Info("dropped")
	logger.Warn("Unsupported uplink sub-event", "device_id", "A81758FFFE0312D4")
	require.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "thsensor", line["service"])
	assert.Equal(t, "A81758FFFE0312D4", line["device_id"])
}

func Test_newLoggerText(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newLogger(buf, config.LoggingConfig{Level: "debug", Format: "text"})

	logger.Debug("Persisted event", "counter", 4)
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "service=thsensor")
	assert.Contains(t, buf.String(), "counter=4")
}
