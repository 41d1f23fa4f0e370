package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"ttn-th-ingest/internal/cache"
	"ttn-th-ingest/internal/db"
	"ttn-th-ingest/internal/gaps"
	"ttn-th-ingest/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type repository interface {
	LoadDevices(ctx context.Context) ([]model.Device, error)
	GetDevice(ctx context.Context, deviceID string) (model.Device, error)
	LoadEventsByCounter(ctx context.Context, deviceID string, kind model.EventKind) ([]model.Event, error)
	LoadEventsByKind(ctx context.Context, kind model.EventKind) ([]model.Event, error)
	LoadConnectionEvents(ctx context.Context) ([]model.ConnectionEvent, error)
}

type stateReader interface {
	Get(ctx context.Context, deviceID string) (*cache.DeviceState, bool, error)
}

// Pinger is a dependency checked by /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Config struct {
	DB      repository
	States  stateReader
	Health  map[string]Pinger
	Metrics http.Handler
}

type API struct {
	db      repository
	states  stateReader
	health  map[string]Pinger
	metrics http.Handler
}

func New(cfg Config) *API {
	return &API{
		db:      cfg.DB,
		states:  cfg.States,
		health:  cfg.Health,
		metrics: cfg.Metrics,
	}
}

func (a *API) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", a.GetHealth)
	if a.metrics != nil {
		r.Method(http.MethodGet, "/metrics", a.metrics)
	}
	r.Get("/devices", a.GetDevices)
	r.Route("/devices/{device_id}", func(r chi.Router) {
		r.Get("/events", a.GetDeviceEvents)
		r.Get("/gaps", a.GetDeviceGaps)
		r.Get("/latest", a.GetDeviceLatest)
	})
	r.Get("/events", a.GetEventsByKind)
	r.Get("/connections", a.GetConnections)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to encode response", "error", err)
	}
}

func writeDBError(w http.ResponseWriter, err error) {
	if errors.Is(err, db.ErrNotFound) {
		http.Error(w, "device not found", http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// parseKind reads ?kind=. An absent kind is returned as "" when optional.
func parseKind(r *http.Request, required bool) (model.EventKind, bool) {
	kind := model.EventKind(r.URL.Query().Get("kind"))
	if kind == "" {
		return "", !required
	}
	return kind, kind.Valid()
}

func (a *API) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(a.health))
	for name, p := range a.health {
		if err := p.Ping(ctx); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}
	writeJSON(w, status, map[string]any{"status": http.StatusText(status), "checks": checks})
}

func (a *API) GetDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := a.db.LoadDevices(r.Context())
	if err != nil {
		writeDBError(w, err)
		return
	}
	resp := GetDevicesResponse{Devices: make([]Device, 0, len(devices))}
	for _, d := range devices {
		resp.Devices = append(resp.Devices, Device{DeviceID: d.ID, DisplayName: d.DisplayName})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) GetDeviceEvents(w http.ResponseWriter, r *http.Request) {
	deviceID := chi.URLParam(r, "device_id")
	kind, ok := parseKind(r, false)
	if !ok {
		http.Error(w, "invalid kind", http.StatusBadRequest)
		return
	}
	if _, err := a.db.GetDevice(r.Context(), deviceID); err != nil {
		writeDBError(w, err)
		return
	}
	events, err := a.db.LoadEventsByCounter(r.Context(), deviceID, kind)
	if err != nil {
		writeDBError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, GetEventsResponse{Events: toEvents(events)})
}

func (a *API) GetDeviceGaps(w http.ResponseWriter, r *http.Request) {
	deviceID := chi.URLParam(r, "device_id")
	device, err := a.db.GetDevice(r.Context(), deviceID)
	if err != nil {
		writeDBError(w, err)
		return
	}
	events, err := a.db.LoadEventsByCounter(r.Context(), deviceID, "")
	if err != nil {
		writeDBError(w, err)
		return
	}
	var resp GetGapsResponse = gaps.Summarize(device, events)
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) GetDeviceLatest(w http.ResponseWriter, r *http.Request) {
	if a.states == nil {
		http.Error(w, "state cache disabled", http.StatusNotImplemented)
		return
	}
	deviceID := chi.URLParam(r, "device_id")
	state, ok, err := a.states.Get(r.Context(), deviceID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if !ok {
		http.Error(w, "no state for device", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (a *API) GetEventsByKind(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(r, true)
	if !ok {
		http.Error(w, "missing or invalid kind", http.StatusBadRequest)
		return
	}
	events, err := a.db.LoadEventsByKind(r.Context(), kind)
	if err != nil {
		writeDBError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, GetEventsResponse{Events: toEvents(events)})
}

func (a *API) GetConnections(w http.ResponseWriter, r *http.Request) {
	events, err := a.db.LoadConnectionEvents(r.Context())
	if err != nil {
		writeDBError(w, err)
		return
	}
	resp := GetConnectionsResponse{Connections: make([]ConnectionEvent, 0, len(events))}
	for _, ev := range events {
		resp.Connections = append(resp.Connections, ConnectionEvent{
			State:      string(ev.State),
			Reason:     ev.Reason,
			OccurredAt: ev.OccurredAt.UTC().Format(time.RFC3339Nano),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
