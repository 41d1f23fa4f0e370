package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

type Config struct {
	Name      string
	Processor Processor
	// ErrorPause is how long the loop waits after a failed ProcessMessage.
	ErrorPause time.Duration
}

type Processor interface {
	ProcessMessage(ctx context.Context) error
}

type Worker struct {
	name       string
	processor  Processor
	errorPause time.Duration
}

func New(cfg Config) *Worker {
	pause := cfg.ErrorPause
	if pause == 0 {
		pause = time.Second
	}
	return &Worker{
		name:       cfg.Name,
		processor:  cfg.Processor,
		errorPause: pause,
	}
}

// Run calls the processor until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	slog.InfoContext(ctx, "Worker started...", "worker", w.name)
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Worker stopped...", "worker", w.name)
			return
		default:
		}

		err := w.processor.ProcessMessage(ctx)
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			continue
		}
		slog.ErrorContext(ctx, "Worker failed to process message", "worker", w.name, "error", err)
		select {
		case <-ctx.Done():
		case <-time.After(w.errorPause):
		}
	}
}
