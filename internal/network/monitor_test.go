// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package network

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-visit-keeper/internal/logger"
	"github.com/MKhiriev/go-visit-keeper/models"
)

var (
	online        = models.ConnectivityStatus{IsConnected: true, IsInternetReachable: models.Reachable(true)}
	onlineUnknown = models.ConnectivityStatus{IsConnected: true}
	unreachable   = models.ConnectivityStatus{IsConnected: true, IsInternetReachable: models.Reachable(false)}
	offline       = models.ConnectivityStatus{IsConnected: false}
)

// scriptedProber returns the scripted statuses in order, repeating the last.
type scriptedProber struct {
	mu       sync.Mutex
	statuses []models.ConnectivityStatus
	calls    int
}

func (p *scriptedProber) Probe(context.Context) models.ConnectivityStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.calls
	if i >= len(p.statuses) {
		i = len(p.statuses) - 1
	}
	p.calls++
	return p.statuses[i]
}

func (p *scriptedProber) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func TestMonitor_NotInitializedBeforeInit(t *testing.T) {
	m := NewMonitor(StaticProber{Status: online}, 0, logger.Nop())

	assert.Equal(t, models.ConnectivityState{}, m.State())
	assert.False(t, m.IsOnline())
}

func TestMonitor_Init(t *testing.T) {
	tests := []struct {
		name   string
		status models.ConnectivityStatus
		want   bool
	}{
		{name: "reachable", status: online, want: true},
		{name: "unknown reachability counts as online", status: onlineUnknown, want: true},
		{name: "unreachable", status: unreachable, want: false},
		{name: "disconnected", status: offline, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMonitor(StaticProber{Status: tt.status}, 0, logger.Nop())

			state := m.Init(context.Background())
			assert.True(t, state.IsInitialized)
			assert.Equal(t, tt.want, state.IsOnline)
			assert.Equal(t, state, m.State())
			assert.Equal(t, tt.status, m.Status())
		})
	}
}

func TestMonitor_EventsOnlyOnChange(t *testing.T) {
	m := NewMonitor(StaticProber{Status: offline}, 0, logger.Nop())
	events, unsubscribe := m.Subscribe()
	defer unsubscribe()

	m.Init(context.Background())
	ev := <-events
	assert.False(t, ev.Previous.IsInitialized)
	assert.True(t, ev.Current.IsInitialized)
	assert.False(t, ev.CameOnline())

	// same derived state: no event
	m.Publish(unreachable)
	select {
	case ev := <-events:
		t.Fatalf("unexpected event %+v", ev)
	default:
	}

	m.Publish(onlineUnknown)
	ev = <-events
	assert.True(t, ev.CameOnline())
	assert.Equal(t, onlineUnknown, ev.Status)
}

func TestMonitor_SlowSubscriberGetsLatest(t *testing.T) {
	m := NewMonitor(StaticProber{Status: offline}, 0, logger.Nop())
	events, unsubscribe := m.Subscribe()
	defer unsubscribe()

	m.Publish(online)
	m.Publish(offline)
	m.Publish(online)

	ev := <-events
	assert.True(t, ev.Current.IsOnline)
	assert.False(t, ev.Previous.IsOnline)

	select {
	case ev := <-events:
		t.Fatalf("expected a single buffered event, got %+v", ev)
	default:
	}
}

func TestMonitor_Unsubscribe(t *testing.T) {
	m := NewMonitor(StaticProber{Status: offline}, 0, logger.Nop())
	events, unsubscribe := m.Subscribe()

	unsubscribe()
	unsubscribe()

	_, ok := <-events
	assert.False(t, ok)

	// publishing after unsubscribe must not panic on the closed channel
	assert.NotPanics(t, func() { m.Publish(online) })
}

func TestMonitor_MultipleSubscribers(t *testing.T) {
	m := NewMonitor(StaticProber{Status: offline}, 0, logger.Nop())
	a, unsubA := m.Subscribe()
	defer unsubA()
	b, unsubB := m.Subscribe()
	defer unsubB()

	m.Publish(online)

	assert.True(t, (<-a).CameOnline())
	assert.True(t, (<-b).CameOnline())
}

func TestMonitor_RunPolls(t *testing.T) {
	prober := &scriptedProber{statuses: []models.ConnectivityStatus{offline, offline, online}}
	m := NewMonitor(prober, 5*time.Millisecond, logger.Nop())
	m.Init(context.Background())

	events, unsubscribe := m.Subscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	select {
	case ev := <-events:
		assert.True(t, ev.CameOnline())
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not report the transition")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	require.GreaterOrEqual(t, prober.Calls(), 3)
}

func TestMonitor_RunWithoutInterval(t *testing.T) {
	m := NewMonitor(StaticProber{Status: online}, 0, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m.Run(ctx)
	assert.False(t, m.State().IsInitialized)
}
