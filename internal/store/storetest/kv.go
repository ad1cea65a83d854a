// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package storetest provides an in-process [store.KeyValueStore] for tests
// of packages built on the offline store.
package storetest

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-visit-keeper/internal/store"
)

// memoryKeyValueStore keeps documents in a map and follows the error
// contract of the sqlite store.
type memoryKeyValueStore struct {
	mu     sync.RWMutex
	items  map[string]string
	closed bool
}

// NewKeyValueStore returns an empty in-memory store.
func NewKeyValueStore() store.KeyValueStore {
	return &memoryKeyValueStore{items: make(map[string]string)}
}

func (s *memoryKeyValueStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", store.ErrStoreClosed
	}
	if key == "" {
		return "", store.ErrEmptyKey
	}

	value, ok := s.items[key]
	if !ok {
		return "", store.ErrKeyNotFound
	}
	return value, nil
}

func (s *memoryKeyValueStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return store.ErrStoreClosed
	}
	if key == "" {
		return store.ErrEmptyKey
	}

	s.items[key] = value
	return nil
}

func (s *memoryKeyValueStore) Remove(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return store.ErrStoreClosed
	}
	for _, key := range keys {
		if key == "" {
			return store.ErrEmptyKey
		}
	}

	for _, key := range keys {
		delete(s.items, key)
	}
	return nil
}

func (s *memoryKeyValueStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
