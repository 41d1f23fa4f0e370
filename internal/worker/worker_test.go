package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingProcessor struct {
	calls  atomic.Int32
	stopAt int32
	cancel context.CancelFunc
	err    error
}

func (p *countingProcessor) ProcessMessage(ctx context.Context) error {
	if p.calls.Add(1) == p.stopAt {
		p.cancel()
		return ctx.Err()
	}
	return p.err
}

func Test_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := &countingProcessor{stopAt: 5, cancel: cancel}

	done := make(chan struct{})
	go func() {
		New(Config{Name: "test", Processor: p}).Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}
	assert.Equal(t, int32(5), p.calls.Load())
}

func Test_RunKeepsGoingAfterErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := &countingProcessor{stopAt: 3, cancel: cancel, err: errors.New("transient")}

	done := make(chan struct{})
	go func() {
		New(Config{Name: "test", Processor: p, ErrorPause: time.Millisecond}).Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}
	assert.Equal(t, int32(3), p.calls.Load())
}
