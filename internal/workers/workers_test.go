// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/umay/internal/logger"
)

// orderWorker records its id into a shared slice on Run and Stop.
type orderWorker struct {
	id      int
	started *[]int
	stopped *[]int
}

func (o *orderWorker) Run(context.Context) {
	*o.started = append(*o.started, o.id)
}

func (o *orderWorker) Stop() {
	*o.stopped = append(*o.stopped, o.id)
}

func TestWorkers_RunAndStopOrder(t *testing.T) {
	var started, stopped []int
	ws := New(
		&orderWorker{id: 1, started: &started, stopped: &stopped},
		&orderWorker{id: 2, started: &started, stopped: &stopped},
		&orderWorker{id: 3, started: &started, stopped: &stopped},
	)

	ws.Run(context.Background())
	ws.Stop()

	assert.Equal(t, []int{1, 2, 3}, started)
	assert.Equal(t, []int{3, 2, 1}, stopped)
}

func TestWorkers_Empty(t *testing.T) {
	ws := New()

	// Should not panic when there is nothing to run
	ws.Run(context.Background())
	ws.Stop()
}

func TestRefreshWorker_Ticks(t *testing.T) {
	var calls atomic.Int64
	w := NewRefreshWorker(10*time.Millisecond, func(context.Context) { calls.Add(1) }, logger.Nop())

	w.Run(context.Background())
	time.Sleep(55 * time.Millisecond)
	w.Stop()

	assert.GreaterOrEqual(t, calls.Load(), int64(3))
}

func TestRefreshWorker_StopHaltsTicks(t *testing.T) {
	var calls atomic.Int64
	w := NewRefreshWorker(5*time.Millisecond, func(context.Context) { calls.Add(1) }, logger.Nop())

	w.Run(context.Background())
	time.Sleep(20 * time.Millisecond)
	w.Stop()

	after := calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}

func TestRefreshWorker_ContextCancel(t *testing.T) {
	var calls atomic.Int64
	ctx, cancel := context.WithCancel(context.Background())
	w := NewRefreshWorker(5*time.Millisecond, func(context.Context) { calls.Add(1) }, logger.Nop())

	w.Run(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after the context was cancelled")
	}
}

func TestRefreshWorker_RestartReplacesLoop(t *testing.T) {
	var calls atomic.Int64
	w := NewRefreshWorker(5*time.Millisecond, func(context.Context) { calls.Add(1) }, logger.Nop())

	w.Run(context.Background())
	w.Run(context.Background())
	w.Stop()
	w.Stop()

	assert.Nil(t, w.cancel)
}

func TestNewRefreshWorker_DefaultInterval(t *testing.T) {
	w := NewRefreshWorker(0, func(context.Context) {}, logger.Nop())
	assert.Equal(t, DefaultRefreshInterval, w.interval)
}
