// Package gaps finds holes in each device's frame-counter sequence. A hole
// means uplinks were lost between the radio and the store.
package gaps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"ttn-th-ingest/internal/model"
)

type Boundary struct {
	Counter   int64     `json:"counter"`
	Timestamp time.Time `json:"timestamp"`
}

// Gap is one missing stretch of counters. RunLength is the length of the
// uninterrupted run that ended at Before.
type Gap struct {
	DeviceID  string   `json:"device"`
	GapSize   int64    `json:"gap_size"`
	RunLength int64    `json:"run_length"`
	Before    Boundary `json:"before"`
	After     Boundary `json:"after"`
}

// FindGaps walks events in ascending counter order and reports every place
// where the counter jumps by more than one. Repeated or lower counters are
// not gaps. The input slice is not modified.
func FindGaps(deviceID string, events []model.Event) []Gap {
	gaps := []Gap{}
	if len(events) == 0 {
		return gaps
	}
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b model.Event) int {
		switch {
		case a.Counter < b.Counter:
			return -1
		case a.Counter > b.Counter:
			return 1
		}
		return 0
	})

	runStart := sorted[0]
	mru := sorted[0]
	for _, ev := range sorted[1:] {
		if ev.Counter > mru.Counter+1 {
			gaps = append(gaps, Gap{
				DeviceID:  deviceID,
				GapSize:   ev.Counter - mru.Counter,
				RunLength: mru.Counter - runStart.Counter,
				Before:    Boundary{Counter: mru.Counter, Timestamp: mru.Timestamp},
				After:     Boundary{Counter: ev.Counter, Timestamp: ev.Timestamp},
			})
			runStart = ev
		}
		mru = ev
	}
	return gaps
}

// DeviceSummary describes the stored history of one device. FirstTime and
// LastTime are the timestamps of the lowest- and highest-counter events,
// not the earliest and latest timestamps.
type DeviceSummary struct {
	DeviceID     string    `json:"device"`
	DisplayName  string    `json:"display_name,omitempty"`
	EventCount   int       `json:"event_count"`
	FirstCounter int64     `json:"first_counter"`
	LastCounter  int64     `json:"last_counter"`
	FirstTime    time.Time `json:"first_time"`
	LastTime     time.Time `json:"last_time"`
	Gaps         []Gap     `json:"gaps"`
}

// Summarize builds the summary of one device from its events.
func Summarize(device model.Device, events []model.Event) DeviceSummary {
	s := DeviceSummary{
		DeviceID:    device.ID,
		DisplayName: device.DisplayName,
		EventCount:  len(events),
		Gaps:        FindGaps(device.ID, events),
	}
	// Ties keep the order a stable sort by counter would give: the first
	// event wins the lowest counter, the last one the highest.
	for i, ev := range events {
		if i == 0 || ev.Counter < s.FirstCounter {
			s.FirstCounter = ev.Counter
			s.FirstTime = ev.Timestamp
		}
		if i == 0 || ev.Counter >= s.LastCounter {
			s.LastCounter = ev.Counter
			s.LastTime = ev.Timestamp
		}
	}
	return s
}

type repository interface {
	LoadDevices(ctx context.Context) ([]model.Device, error)
	LoadEventsByCounter(ctx context.Context, deviceID string, kind model.EventKind) ([]model.Event, error)
}

type Analyzer struct {
	repo repository
}

func NewAnalyzer(repo repository) *Analyzer {
	return &Analyzer{repo: repo}
}

type Report struct {
	Devices []DeviceSummary `json:"devices"`
}

// Run analyses every known device. Events of all kinds share one counter
// sequence, so they are analysed together.
func (a *Analyzer) Run(ctx context.Context) (*Report, error) {
	const fn = "Analyzer:Run"
	devices, err := a.repo.LoadDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", fn, err)
	}
	report := &Report{Devices: make([]DeviceSummary, 0, len(devices))}
	for _, d := range devices {
		summary, err := a.Device(ctx, d)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", fn, err)
		}
		report.Devices = append(report.Devices, summary)
	}
	return report, nil
}

func (a *Analyzer) Device(ctx context.Context, device model.Device) (DeviceSummary, error) {
	const fn = "Analyzer:Device"
	events, err := a.repo.LoadEventsByCounter(ctx, device.ID, "")
	if err != nil {
		return DeviceSummary{}, fmt.Errorf("%s:%w", fn, err)
	}
	return Summarize(device, events), nil
}

func (r *Report) GapCount() int {
	n := 0
	for _, d := range r.Devices {
		n += len(d.Gaps)
	}
	return n
}

// Log writes one info line per device and one warning per gap.
func (r *Report) Log(ctx context.Context, logger *slog.Logger) {
	for _, d := range r.Devices {
		logger.InfoContext(ctx, "Device history",
			"device_id", d.DeviceID,
			"display_name", d.DisplayName,
			"events", d.EventCount,
			"first_counter", d.FirstCounter,
			"last_counter", d.LastCounter,
			"first_time", d.FirstTime,
			"last_time", d.LastTime,
		)
		for _, g := range d.Gaps {
			logger.WarnContext(ctx, "Missing events",
				"device_id", g.DeviceID,
				"gap_size", g.GapSize,
				"run_length", g.RunLength,
				"before_counter", g.Before.Counter,
				"before_time", g.Before.Timestamp,
				"after_counter", g.After.Counter,
				"after_time", g.After.Timestamp,
			)
		}
	}
}

// WriteJSON writes the gap records, one JSON object per line.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, d := range r.Devices {
		for _, g := range d.Gaps {
			if err := enc.Encode(g); err != nil {
				return err
			}
		}
	}
	return nil
}
