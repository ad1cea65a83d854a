// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-visit-keeper/internal/logger"
)

type namedWorker struct {
	name string
	Worker
}

// Named attaches a name used in logs to fn.
func Named(name string, fn func(ctx context.Context)) Worker {
	return namedWorker{name: name, Worker: Func(fn)}
}

// Workers runs a fixed set of workers side by side.
type Workers struct {
	workers []Worker
	logger  *logger.Logger
}

// New creates a Workers aggregate. Nil workers are skipped.
func New(ws ...Worker) *Workers {
	out := make([]Worker, 0, len(ws))
	for _, w := range ws {
		if w != nil {
			out = append(out, w)
		}
	}
	return &Workers{workers: out, logger: logger.Nop()}
}

// WithLogger sets the logger used for start and stop messages.
func (w *Workers) WithLogger(l *logger.Logger) *Workers {
	if l != nil {
		w.logger = l
	}
	return w
}

// Len returns the number of workers.
func (w *Workers) Len() int {
	return len(w.workers)
}

// Run starts every worker in its own goroutine and blocks until all of them
// have returned. Workers stop when ctx is done.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			name := workerName(worker)
			w.logger.Debug().Str("func", "*Workers.Run").Str("worker", name).Msg("worker started")
			worker.Run(ctx)
			w.logger.Debug().Str("func", "*Workers.Run").Str("worker", name).Msg("worker stopped")
		}()
	}
	wg.Wait()
}

func workerName(w Worker) string {
	if n, ok := w.(namedWorker); ok {
		return n.name
	}
	return "unnamed"
}
