// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-visit-keeper/internal/logger"
)

// mockWorker counts Run calls and blocks until ctx is done.
type mockWorker struct {
	runCount atomic.Int32
	running  atomic.Int32
}

func (m *mockWorker) Run(ctx context.Context) {
	m.runCount.Add(1)
	m.running.Add(1)
	defer m.running.Add(-1)
	<-ctx.Done()
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1, w2, w3 := &mockWorker{}, &mockWorker{}, &mockWorker{}
	ws := New(w1, w2, w3)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ws.Run(ctx)
		close(done)
	}()

	// all three run at the same time
	require.Eventually(t, func() bool {
		return w1.running.Load()+w2.running.Load()+w3.running.Load() == 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	for i, w := range []*mockWorker{w1, w2, w3} {
		assert.Equal(t, int32(1), w.runCount.Load(), "worker[%d]", i)
		assert.Zero(t, w.running.Load(), "worker[%d]", i)
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := New()
	assert.NotPanics(t, func() { ws.Run(context.Background()) })

	var zero Workers
	assert.NotPanics(t, func() { zero.Run(context.Background()) })
}

func TestWorkers_New_SkipsNil(t *testing.T) {
	ws := New(nil, &mockWorker{}, nil)
	assert.Equal(t, 1, ws.Len())
}

func TestWorkers_Run_ReturnsWhenWorkersFinish(t *testing.T) {
	var calls atomic.Int32
	ws := New(
		Func(func(context.Context) { calls.Add(1) }),
		Named("short", func(context.Context) { calls.Add(1) }),
	).WithLogger(logger.Nop())

	ws.Run(context.Background())
	assert.Equal(t, int32(2), calls.Load())
}

func TestWorkers_Run_MultipleRuns(t *testing.T) {
	var calls atomic.Int32
	ws := New(Func(func(context.Context) { calls.Add(1) }))

	ws.Run(context.Background())
	ws.Run(context.Background())
	ws.Run(context.Background())

	assert.Equal(t, int32(3), calls.Load())
}

func TestWorkerName(t *testing.T) {
	assert.Equal(t, "monitor", workerName(Named("monitor", func(context.Context) {})))
	assert.Equal(t, "unnamed", workerName(Func(func(context.Context) {})))
}
