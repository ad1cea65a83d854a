// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-visit-keeper/internal/store"
	"github.com/MKhiriev/go-visit-keeper/models"
)

// documents is the JSON view of the key-value store shared by the services.
// mu guards every read-modify-write of a document and generation.
type documents struct {
	store store.KeyValueStore
	mu    sync.Mutex

	// generation is bumped by every clear; writes computed before a clear
	// compare it and are dropped.
	generation uint64
}

func newDocuments(kv store.KeyValueStore) *documents {
	return &documents{store: kv}
}

// load decodes the document under key into dst. It reports false when the
// key is absent.
func (d *documents) load(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := d.store.Get(ctx, key)
	if errors.Is(err, store.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: get %s: %w", ErrStorage, key, err)
	}

	if err = json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (d *documents) save(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err = d.store.Set(ctx, key, string(payload)); err != nil {
		return fmt.Errorf("%w: set %s: %w", ErrStorage, key, err)
	}
	return nil
}

func (d *documents) remove(ctx context.Context, keys ...string) error {
	if err := d.store.Remove(ctx, keys...); err != nil {
		return fmt.Errorf("%w: remove: %w", ErrStorage, err)
	}
	return nil
}

func (d *documents) currentGeneration() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.generation
}

// loadQueue returns the persisted queue, empty when absent.
func (d *documents) loadQueue(ctx context.Context) ([]models.PendingVisit, error) {
	var queue []models.PendingVisit
	if _, err := d.load(ctx, store.KeyPendingVisits, &queue); err != nil {
		return nil, err
	}
	return queue, nil
}

func unsynced(queue []models.PendingVisit) []models.PendingVisit {
	out := make([]models.PendingVisit, 0, len(queue))
	for _, p := range queue {
		if !p.Synced {
			out = append(out, p)
		}
	}
	return out
}
