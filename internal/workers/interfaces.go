// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that runs
// several workers for the lifetime of one context.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run is expected to block until ctx is done. The connectivity monitor's
// polling loop and the periodic sync job are both workers:
//
//	ws := workers.New(
//	    workers.Named("monitor", monitor.Run),
//	    workers.Named("sync-job", job.Run),
//	)
//	ws.Run(ctx)
type Worker interface {
	Run(ctx context.Context)
}

// Func adapts a plain function to [Worker].
type Func func(ctx context.Context)

// Run implements [Worker].
func (f Func) Run(ctx context.Context) {
	f(ctx)
}
