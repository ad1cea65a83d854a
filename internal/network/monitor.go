// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package network

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-visit-keeper/internal/logger"
	"github.com/MKhiriev/go-visit-keeper/internal/utils"
	"github.com/MKhiriev/go-visit-keeper/models"
)

// Monitor holds the process-lifetime [models.ConnectivityState].
//
// The state is seeded by [Monitor.Init], refreshed by the polling loop in
// [Monitor.Run] and by statuses pushed through [Monitor.Publish]. Every
// change is delivered to subscribers as a [models.ConnectivityEvent].
type Monitor struct {
	prober   Prober
	interval time.Duration
	logger   *logger.Logger

	mu     sync.RWMutex
	state  models.ConnectivityState
	status models.ConnectivityStatus
	events *utils.Broadcaster[models.ConnectivityEvent]
}

// NewMonitor creates a monitor that is offline and uninitialized until the
// first probe resolves.
func NewMonitor(prober Prober, interval time.Duration, logger *logger.Logger) *Monitor {
	return &Monitor{
		prober:   prober,
		interval: interval,
		logger:   logger,
		events:   utils.NewBroadcaster[models.ConnectivityEvent](),
	}
}

// Init issues the startup probe and marks the state initialized.
func (m *Monitor) Init(ctx context.Context) models.ConnectivityState {
	return m.apply(m.prober.Probe(ctx))
}

// Publish feeds a status reported by the platform.
func (m *Monitor) Publish(status models.ConnectivityStatus) models.ConnectivityState {
	return m.apply(status)
}

// Run probes every interval until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	if m.interval <= 0 {
		<-ctx.Done()
		return
	}

	t := time.NewTicker(m.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.apply(m.prober.Probe(ctx))
		}
	}
}

// State returns the current connectivity state.
func (m *Monitor) State() models.ConnectivityState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// IsOnline reports the derived online flag.
func (m *Monitor) IsOnline() bool {
	return m.State().IsOnline
}

// Status returns the last applied probe result.
func (m *Monitor) Status() models.ConnectivityStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Subscribe registers for connectivity events. The channel keeps only the
// latest undelivered event, so a slow reader never blocks the monitor. The
// returned func unsubscribes and closes the channel; it is safe to call
// more than once.
func (m *Monitor) Subscribe() (<-chan models.ConnectivityEvent, func()) {
	return m.events.Subscribe()
}

func (m *Monitor) apply(status models.ConnectivityStatus) models.ConnectivityState {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.state
	cur := models.ConnectivityState{IsOnline: status.Online(), IsInitialized: true}
	m.state = cur
	m.status = status

	if prev == cur {
		return cur
	}

	m.logger.Info().
		Str("func", "*Monitor.apply").
		Bool("was_online", prev.IsOnline).
		Bool("is_online", cur.IsOnline).
		Bool("is_connected", status.IsConnected).
		Msg("connectivity changed")

	m.events.Publish(models.ConnectivityEvent{Previous: prev, Current: cur, Status: status})

	return cur
}
