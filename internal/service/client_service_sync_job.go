// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"
)

// DefaultSyncInterval is used when the job is started with a non-positive
// interval.
const DefaultSyncInterval = 5 * time.Minute

type clientSyncJob struct {
	syncer   Syncer
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob creates a clientSyncJob that calls syncer.SyncNow on a
// ticker. The job is idle until Start or Run is called.
func NewClientSyncJob(syncer Syncer, interval time.Duration) ClientSyncJob {
	return &clientSyncJob{syncer: syncer, interval: interval}
}

// Start implements ClientSyncJob. It stops any previously running job, then
// launches a background goroutine that calls SyncNow every interval. If interval
// is zero or negative it defaults to [DefaultSyncInterval]. The goroutine exits
// when ctx is cancelled or Stop is called.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				_ = j.syncer.SyncNow(jobCtx)
			}
		}
	}()
}

// Stop implements ClientSyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is not
// running (no-op in that case).
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// Run implements ClientSyncJob. It starts the job with the configured
// interval and blocks until ctx is done.
func (j *clientSyncJob) Run(ctx context.Context) {
	j.Start(ctx, j.interval)
	<-ctx.Done()
	j.Stop()
}
