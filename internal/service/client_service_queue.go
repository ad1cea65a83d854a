// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-visit-keeper/internal/logger"
	"github.com/MKhiriev/go-visit-keeper/internal/store"
	"github.com/MKhiriev/go-visit-keeper/internal/utils"
	"github.com/MKhiriev/go-visit-keeper/models"
)

type clientQueueService struct {
	docs   *documents
	cache  *clientCacheService
	ids    utils.IDGenerator
	clock  utils.Clock
	logger *logger.Logger
}

func newClientQueueService(docs *documents, cache *clientCacheService, ids utils.IDGenerator, clock utils.Clock, logger *logger.Logger) *clientQueueService {
	return &clientQueueService{
		docs:   docs,
		cache:  cache,
		ids:    ids,
		clock:  clock,
		logger: logger,
	}
}

// Enqueue implements [ClientQueueService].
//
// Steps, all under the document lock:
//  1. load the queue (empty when absent);
//  2. return the existing unsynced entry for landmarkID, if any;
//  3. append a new entry and persist the queue;
//  4. append a shadow of the entry to the cached visit list.
//
// A failure in step 4 is logged only: the intent itself is durable.
func (s *clientQueueService) Enqueue(ctx context.Context, landmarkID string) (models.EnqueueResult, error) {
	landmarkID = strings.TrimSpace(landmarkID)
	if landmarkID == "" {
		return models.EnqueueResult{}, ErrEmptyLandmarkID
	}

	s.docs.mu.Lock()
	defer s.docs.mu.Unlock()

	queue, err := s.docs.loadQueue(ctx)
	if err != nil {
		return models.EnqueueResult{}, err
	}

	pending := unsynced(queue)
	for _, p := range pending {
		if p.LandmarkID == landmarkID {
			return models.EnqueueResult{Visit: p, Created: false, PendingCount: len(pending)}, nil
		}
	}

	now := s.clock.Now()
	visit := models.PendingVisit{
		ID:         s.ids.Generate(now),
		LandmarkID: landmarkID,
		Timestamp:  now,
		Synced:     false,
	}
	queue = append(queue, visit)

	if err = s.docs.save(ctx, store.KeyPendingVisits, queue); err != nil {
		return models.EnqueueResult{}, err
	}

	if err = s.cache.appendShadowLocked(ctx, visit); err != nil {
		s.logger.Err(err).
			Str("func", "*clientQueueService.Enqueue").
			Str("landmark_id", landmarkID).
			Msg("error appending shadow visit to cache")
	}

	return models.EnqueueResult{Visit: visit, Created: true, PendingCount: len(pending) + 1}, nil
}

// ListUnsynced implements [ClientQueueService].
func (s *clientQueueService) ListUnsynced(ctx context.Context) ([]models.PendingVisit, error) {
	s.docs.mu.Lock()
	defer s.docs.mu.Unlock()

	queue, err := s.docs.loadQueue(ctx)
	if err != nil {
		return nil, err
	}
	return unsynced(queue), nil
}

// PendingCount implements [ClientQueueService].
func (s *clientQueueService) PendingCount(ctx context.Context) (int, error) {
	pending, err := s.ListUnsynced(ctx)
	if err != nil {
		return 0, err
	}
	return len(pending), nil
}

// MarkSynced implements [ClientQueueService]. The queue is reloaded under
// the lock so entries enqueued while a sync pass was running are kept.
func (s *clientQueueService) MarkSynced(ctx context.Context, ids []string) (int, error) {
	s.docs.mu.Lock()
	defer s.docs.mu.Unlock()

	queue, err := s.docs.loadQueue(ctx)
	if err != nil {
		return 0, err
	}

	synced := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		synced[id] = struct{}{}
	}

	changed := false
	for i := range queue {
		if _, ok := synced[queue[i].ID]; ok && !queue[i].Synced {
			queue[i].Synced = true
			changed = true
		}
	}

	if changed {
		if err = s.docs.save(ctx, store.KeyPendingVisits, queue); err != nil {
			return 0, err
		}
	}

	return len(unsynced(queue)), nil
}

// ClearAll implements [ClientQueueService].
func (s *clientQueueService) ClearAll(ctx context.Context) error {
	s.docs.mu.Lock()
	defer s.docs.mu.Unlock()

	s.docs.generation++
	return s.docs.remove(ctx, store.AllKeys()...)
}
