package main

import (
	"context"
	"log/slog"

	"ttn-th-ingest/internal/api"
	"ttn-th-ingest/internal/cache"
	"ttn-th-ingest/internal/db"
	"ttn-th-ingest/internal/ingest"
	"ttn-th-ingest/internal/metrics"
	"ttn-th-ingest/internal/tsdb"
)

// pipeline is the ingester plus the optional mirrors it feeds, shared by
// the ingest and replay commands.
type pipeline struct {
	ingester *ingest.Ingester
	metrics  *metrics.Metrics
	states   *cache.StateCache
	health   map[string]api.Pinger
	closers  []func()
}

func newPipeline(ctx context.Context, database *db.DB, hydrate bool) *pipeline {
	p := &pipeline{
		metrics: metrics.New(),
		health:  map[string]api.Pinger{"postgres": database},
	}

	var mirrors []ingest.Mirror
	if states := newStateCache(); states != nil {
		if hydrate {
			if err := states.Hydrate(ctx, database); err != nil {
				slog.WarnContext(ctx, "Cache hydration failed", "error", err)
			}
		}
		p.states = states
		p.health["redis"] = states
		p.closers = append(p.closers, func() { _ = states.Close() })
		mirrors = append(mirrors, states)
	}
	if cfg.InfluxDB.Enabled {
		w := tsdb.New(tsdb.Config{
			URL:    cfg.InfluxDB.URL,
			Token:  cfg.InfluxDB.Token,
			Org:    cfg.InfluxDB.Org,
			Bucket: cfg.InfluxDB.Bucket,
		})
		p.health["influxdb"] = w
		p.closers = append(p.closers, w.Close)
		mirrors = append(mirrors, w)
	}

	p.ingester = ingest.New(ingest.Config{
		Persister:   ingest.NewPersister(database),
		Connections: database,
		Mirrors:     mirrors,
		Metrics:     p.metrics,
		Logger:      slog.Default(),
	})
	return p
}

func newStateCache() *cache.StateCache {
	if !cfg.Redis.Enabled {
		return nil
	}
	return cache.New(cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      cfg.Redis.TTL,
	})
}

func (p *pipeline) newAPI(database *db.DB) *api.API {
	apiCfg := api.Config{
		DB:      database,
		Health:  p.health,
		Metrics: p.metrics.Handler(),
	}
	if p.states != nil {
		apiCfg.States = p.states
	}
	return api.New(apiCfg)
}

// Close releases the mirrors in reverse order of creation.
func (p *pipeline) Close() {
	for i := len(p.closers) - 1; i >= 0; i-- {
		p.closers[i]()
	}
}
