// Package cache keeps the latest known state of every device in Redis so
// the read API can answer "what did this sensor last report" without
// touching the event history.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ttn-th-ingest/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
)

var (
	ErrCacheUnavailable = errors.New("state cache unavailable")
	ErrCorruptState     = errors.New("corrupt cached state")
)

const keyPrefix = "thsensor:device:"

type DeviceState struct {
	DeviceID        string          `json:"device_id"`
	DisplayName     string          `json:"display_name,omitempty"`
	Kind            model.EventKind `json:"kind"`
	Counter         int64           `json:"counter"`
	Timestamp       time.Time       `json:"timestamp"`
	TempC           *float64        `json:"temp_c,omitempty"`
	HumidityPercent *float64        `json:"humidity_percent,omitempty"`
}

func StateFromEvent(device model.Device, event model.Event) *DeviceState {
	return &DeviceState{
		DeviceID:        device.ID,
		DisplayName:     device.DisplayName,
		Kind:            event.Kind,
		Counter:         event.Counter,
		Timestamp:       event.Timestamp,
		TempC:           event.TempC,
		HumidityPercent: event.HumidityPercent,
	}
}

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
	// Consecutive failures before the breaker opens, and how long it stays open.
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

type StateCache struct {
	rdb *redis.Client
	ttl time.Duration
	cb  *gobreaker.CircuitBreaker
}

func New(cfg Config) *StateCache {
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerTimeout == 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}
	return &StateCache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		ttl: cfg.TTL,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "redis-state-cache",
			Timeout: cfg.BreakerTimeout,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= cfg.BreakerFailures
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, redis.Nil)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				slog.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			},
		}),
	}
}

func key(deviceID string) string {
	return keyPrefix + deviceID + ":latest"
}

func (c *StateCache) Get(ctx context.Context, deviceID string) (*DeviceState, bool, error) {
	const fn = "Cache:Get"
	res, err := c.cb.Execute(func() (interface{}, error) {
		return c.rdb.Get(ctx, key(deviceID)).Bytes()
	})
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s:%w:%w", fn, ErrCacheUnavailable, err)
	}
	var state DeviceState
	if err := json.Unmarshal(res.([]byte), &state); err != nil {
		return nil, false, fmt.Errorf("%s:%w:%w", fn, ErrCorruptState, err)
	}
	return &state, true, nil
}

func (c *StateCache) Set(ctx context.Context, state *DeviceState) error {
	const fn = "Cache:Set"
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%s:%w", fn, err)
	}
	_, err = c.cb.Execute(func() (interface{}, error) {
		return nil, c.rdb.Set(ctx, key(state.DeviceID), b, c.ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrCacheUnavailable, err)
	}
	return nil
}

func (c *StateCache) Delete(ctx context.Context, deviceID string) error {
	const fn = "Cache:Delete"
	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, c.rdb.Del(ctx, key(deviceID)).Err()
	})
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrCacheUnavailable, err)
	}
	return nil
}

// Mirror records event as the device's latest state unless a newer one is
// already cached. Replayed history therefore never rolls the state back.
func (c *StateCache) Mirror(ctx context.Context, device model.Device, event model.Event) error {
	current, ok, err := c.Get(ctx, device.ID)
	if err != nil && !errors.Is(err, ErrCorruptState) {
		return err
	}
	if ok && current.Timestamp.After(event.Timestamp) {
		return nil
	}
	return c.Set(ctx, StateFromEvent(device, event))
}

func (c *StateCache) Name() string { return "redis" }

type latestSource interface {
	LoadDevices(ctx context.Context) ([]model.Device, error)
	LoadLatestEvents(ctx context.Context) ([]model.Event, error)
}

// Hydrate seeds the cache with the newest persisted event of every device.
func (c *StateCache) Hydrate(ctx context.Context, src latestSource) error {
	const fn = "Cache:Hydrate"
	slog.InfoContext(ctx, "Starting cache hydration...")
	devices, err := src.LoadDevices(ctx)
	if err != nil {
		return fmt.Errorf("%s:%w", fn, err)
	}
	names := make(map[string]string, len(devices))
	for _, d := range devices {
		names[d.ID] = d.DisplayName
	}

	events, err := src.LoadLatestEvents(ctx)
	if err != nil {
		return fmt.Errorf("%s:%w", fn, err)
	}
	for _, ev := range events {
		device := model.Device{ID: ev.DeviceID, DisplayName: names[ev.DeviceID]}
		if err := c.Mirror(ctx, device, ev); err != nil {
			return fmt.Errorf("%s:%w", fn, err)
		}
	}
	slog.InfoContext(ctx, "Cache hydrated", "devices", len(events))
	return nil
}

func (c *StateCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *StateCache) Close() error {
	return c.rdb.Close()
}
