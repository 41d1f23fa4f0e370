// Package tsdb mirrors measurements into InfluxDB for dashboards. The
// Postgres history stays authoritative; writes here are asynchronous.
package tsdb

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ttn-th-ingest/internal/model"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

const Measurement = "th_measurement"

const recentWriteError = time.Minute

type Config struct {
	URL           string
	Token         string
	Org           string
	Bucket        string
	BatchSize     uint
	FlushInterval time.Duration
}

type Writer struct {
	client influxdb2.Client
	api    api.WriteAPI

	mu       sync.RWMutex
	lastErr  error
	lastErrT time.Time
}

func New(cfg Config) *Writer {
	opts := influxdb2.DefaultOptions()
	if cfg.BatchSize > 0 {
		opts.SetBatchSize(cfg.BatchSize)
	}
	if cfg.FlushInterval > 0 {
		opts.SetFlushInterval(uint(cfg.FlushInterval.Milliseconds()))
	}
	client := influxdb2.NewClientWithOptions(cfg.URL, cfg.Token, opts)
	w := &Writer{
		client: client,
		api:    client.WriteAPI(cfg.Org, cfg.Bucket),
	}
	go w.drainErrors(w.api.Errors())
	return w
}

func (w *Writer) drainErrors(errs <-chan error) {
	for err := range errs {
		w.mu.Lock()
		w.lastErr = err
		w.lastErrT = time.Now()
		w.mu.Unlock()
		slog.Error("Influx write failed", "error", err)
	}
}

func (w *Writer) lastError() (time.Time, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastErrT, w.lastErr
}

// MeasurementPoint converts a measurement event into a line-protocol point.
// Other kinds have no time-series representation and yield nil.
func MeasurementPoint(device model.Device, event model.Event) *write.Point {
	if event.Kind != model.KindMeasurement || event.TempC == nil || event.HumidityPercent == nil {
		return nil
	}
	tags := map[string]string{"device_id": device.ID}
	if device.DisplayName != "" {
		tags["device_name"] = device.DisplayName
	}
	fields := map[string]interface{}{
		"temp_c":           *event.TempC,
		"humidity_percent": *event.HumidityPercent,
		"counter":          event.Counter,
	}
	return influxdb2.NewPoint(Measurement, tags, fields, event.Timestamp)
}

func (w *Writer) Mirror(_ context.Context, device model.Device, event model.Event) error {
	if p := MeasurementPoint(device, event); p != nil {
		w.api.WritePoint(p)
	}
	return nil
}

func (w *Writer) Name() string { return "influxdb" }

// Ping checks the server and also fails while the latest asynchronous
// write error is younger than recentWriteError.
func (w *Writer) Ping(ctx context.Context) error {
	if _, err := w.client.Health(ctx); err != nil {
		return err
	}
	if at, err := w.lastError(); err != nil && time.Since(at) < recentWriteError {
		return fmt.Errorf("write failed %s ago: %w", time.Since(at).Round(time.Second), err)
	}
	return nil
}

func (w *Writer) Close() {
	w.api.Flush()
	w.client.Close()
}
