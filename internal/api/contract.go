package api

import (
	"time"

	"ttn-th-ingest/internal/gaps"
	"ttn-th-ingest/internal/model"
)

type Device struct {
	DeviceID    string `json:"device_id"`
	DisplayName string `json:"display_name"`
}

type Event struct {
	ID              int64    `json:"id"`
	Kind            string   `json:"kind"`
	DeviceID        string   `json:"device_id"`
	Timestamp       string   `json:"timestamp"`
	Counter         int64    `json:"counter"`
	TempC           *float64 `json:"temp_c,omitempty"`
	HumidityPercent *float64 `json:"humidity_percent,omitempty"`
}

type ConnectionEvent struct {
	State      string `json:"state"`
	Reason     string `json:"reason,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

type GetDevicesResponse struct {
	Devices []Device `json:"devices"`
}

type GetEventsResponse struct {
	Events []Event `json:"events"`
}

type GetConnectionsResponse struct {
	Connections []ConnectionEvent `json:"connections"`
}

type GetGapsResponse = gaps.DeviceSummary

func toEvent(ev model.Event) Event {
	return Event{
		ID:              ev.ID,
		Kind:            string(ev.Kind),
		DeviceID:        ev.DeviceID,
		Timestamp:       ev.Timestamp.UTC().Format(time.RFC3339Nano),
		Counter:         ev.Counter,
		TempC:           ev.TempC,
		HumidityPercent: ev.HumidityPercent,
	}
}

func toEvents(events []model.Event) []Event {
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		out = append(out, toEvent(ev))
	}
	return out
}
