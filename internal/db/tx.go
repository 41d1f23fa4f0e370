package db

import (
	"context"
	"fmt"
	"log/slog"

	"ttn-th-ingest/internal/model"

	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgx/v4"
)

// Tx is the set of writes available inside a WithTx unit of work.
type Tx interface {
	GetOrCreateDevice(ctx context.Context, deviceID, displayName string) (model.Device, error)
	InsertEvent(ctx context.Context, event *model.Event) error
}

// WithTx runs work inside one transaction. The transaction commits when work
// returns nil and rolls back when it returns an error or panics. A panic is
// re-raised after the rollback.
func (db *DB) WithTx(ctx context.Context, work func(Tx) error) (err error) {
	const fn = "DB:WithTx"
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrTransactionStartFailed, err)
	}
	defer func() {
		if p := recover(); p != nil {
			rollback(ctx, tx)
			panic(p)
		}
		if err != nil {
			rollback(ctx, tx)
			return
		}
		if cerr := tx.Commit(ctx); cerr != nil {
			err = fmt.Errorf("%s:%w:%w", fn, ErrCommitFailed, cerr)
		}
	}()

	return work(&pgTx{tx: tx})
}

func rollback(ctx context.Context, tx pgx.Tx) {
	// The caller's ctx may already be cancelled; rollback must still reach the server.
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && err != pgx.ErrTxClosed {
		slog.WarnContext(ctx, "Transaction rollback failed", "error", err)
	}
}

type pgTx struct {
	tx pgx.Tx
}

// GetOrCreateDevice returns the device with the given id, creating it when
// absent. An existing display name is never replaced; an empty one is filled
// in when displayName is non-empty.
func (t *pgTx) GetOrCreateDevice(ctx context.Context, deviceID, displayName string) (model.Device, error) {
	const fn = "DB:GetOrCreateDevice"
	_, err := t.tx.Exec(ctx, `
		INSERT INTO devices (device_id, display_name)
		VALUES ($1, $2)
		ON CONFLICT (device_id) DO UPDATE
			SET display_name = EXCLUDED.display_name
			WHERE devices.display_name = '' AND EXCLUDED.display_name <> ''
	`, deviceID, displayName)
	if err != nil {
		return model.Device{}, fmt.Errorf("%s:%w:%w", fn, ErrInsertFailed, err)
	}

	var device model.Device
	err = pgxscan.Get(ctx, t.tx, &device, `
		SELECT device_id, display_name
		FROM devices
		WHERE device_id = $1
	`, deviceID)
	if err != nil {
		return model.Device{}, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	return device, nil
}

// InsertEvent stores event and sets its ID.
func (t *pgTx) InsertEvent(ctx context.Context, event *model.Event) error {
	const fn = "DB:InsertEvent"
	if err := event.Validate(); err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrInsertFailed, err)
	}
	err := t.tx.QueryRow(ctx, `
		INSERT INTO events (
			kind,
			device_id,
			timestamp,
			counter,
			raw_payload,
			temp_c,
			humidity_percent
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		string(event.Kind),
		event.DeviceID,
		event.Timestamp,
		event.Counter,
		event.RawPayload,
		event.TempC,
		event.HumidityPercent,
	).Scan(&event.ID)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrInsertFailed, err)
	}
	return nil
}
