package db

import (
	"context"
	"errors"
	"fmt"

	"ttn-th-ingest/internal/model"

	"github.com/georgysavva/scany/pgxscan"
)

var (
	ErrInsertFailed           = errors.New("insert operation failed")
	ErrTransactionStartFailed = errors.New("transaction start failed")
	ErrCommitFailed           = errors.New("transaction commit failed")
	ErrSelectFailed           = errors.New("select operation failed")
	ErrNotFound               = errors.New("not found")
)

const eventColumns = `
	id,
	kind,
	device_id,
	timestamp,
	counter,
	raw_payload,
	temp_c,
	humidity_percent
`

func (db *DB) LoadDevices(ctx context.Context) ([]model.Device, error) {
	const fn = "DB:LoadDevices"
	devices := []model.Device{}
	err := pgxscan.Select(ctx, db.pool, &devices, `
		SELECT device_id, display_name
		FROM devices
		ORDER BY device_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	return devices, nil
}

func (db *DB) GetDevice(ctx context.Context, deviceID string) (model.Device, error) {
	const fn = "DB:GetDevice"
	var device model.Device
	err := pgxscan.Get(ctx, db.pool, &device, `
		SELECT device_id, display_name
		FROM devices
		WHERE device_id = $1
	`, deviceID)
	if pgxscan.NotFound(err) {
		return model.Device{}, fmt.Errorf("%s:%w: %s", fn, ErrNotFound, deviceID)
	}
	if err != nil {
		return model.Device{}, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	return device, nil
}

// LoadEventsByCounter returns the events of one device ordered by frame
// counter, then by insertion order. An empty kind selects every kind.
func (db *DB) LoadEventsByCounter(ctx context.Context, deviceID string, kind model.EventKind) ([]model.Event, error) {
	const fn = "DB:LoadEventsByCounter"
	events := []model.Event{}
	err := pgxscan.Select(ctx, db.pool, &events, `
		SELECT `+eventColumns+`
		FROM events
		WHERE device_id = $1
		AND ($2::text = '' OR kind = $2::text)
		ORDER BY counter ASC, id ASC
	`, deviceID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	return inUTC(events), nil
}

// LoadEventsByKind returns every event of one kind across all devices,
// ordered by frame counter, then by insertion order.
func (db *DB) LoadEventsByKind(ctx context.Context, kind model.EventKind) ([]model.Event, error) {
	const fn = "DB:LoadEventsByKind"
	events := []model.Event{}
	err := pgxscan.Select(ctx, db.pool, &events, `
		SELECT `+eventColumns+`
		FROM events
		WHERE kind = $1
		ORDER BY counter ASC, id ASC
	`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	return inUTC(events), nil
}

// LoadLatestEvents returns the most recent event of every device.
func (db *DB) LoadLatestEvents(ctx context.Context) ([]model.Event, error) {
	const fn = "DB:LoadLatestEvents"
	events := []model.Event{}
	err := pgxscan.Select(ctx, db.pool, &events, `
		SELECT DISTINCT ON (device_id) `+eventColumns+`
		FROM events
		ORDER BY device_id, timestamp DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	return inUTC(events), nil
}

func (db *DB) InsertConnectionEvent(ctx context.Context, event *model.ConnectionEvent) error {
	const fn = "DB:InsertConnectionEvent"
	if err := model.RequireUTC(event.OccurredAt); err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrInsertFailed, err)
	}
	err := db.pool.QueryRow(ctx, `
		INSERT INTO connection_events (state, reason, occurred_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, string(event.State), event.Reason, event.OccurredAt).Scan(&event.ID)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrInsertFailed, err)
	}
	return nil
}

func (db *DB) LoadConnectionEvents(ctx context.Context) ([]model.ConnectionEvent, error) {
	const fn = "DB:LoadConnectionEvents"
	events := []model.ConnectionEvent{}
	err := pgxscan.Select(ctx, db.pool, &events, `
		SELECT id, state, reason, occurred_at
		FROM connection_events
		ORDER BY occurred_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	for i := range events {
		events[i].OccurredAt = events[i].OccurredAt.UTC()
	}
	return events, nil
}

// pgx hands back timestamptz values in the local zone.
func inUTC(events []model.Event) []model.Event {
	for i := range events {
		events[i].Timestamp = events[i].Timestamp.UTC()
	}
	return events
}
