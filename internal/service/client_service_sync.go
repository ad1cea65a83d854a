// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-visit-keeper/internal/adapter"
	"github.com/MKhiriev/go-visit-keeper/internal/logger"
	"github.com/MKhiriev/go-visit-keeper/internal/store"
	"github.com/MKhiriev/go-visit-keeper/internal/utils"
	"github.com/MKhiriev/go-visit-keeper/models"
)

type clientSyncService struct {
	docs          *documents
	queue         ClientQueueService
	cache         *clientCacheService
	serverAdapter adapter.ServerAdapter
	connectivity  ConnectivityChecker
	clock         utils.Clock
	logger        *logger.Logger

	running atomic.Bool
}

func newClientSyncService(
	docs *documents,
	queue ClientQueueService,
	cache *clientCacheService,
	serverAdapter adapter.ServerAdapter,
	connectivity ConnectivityChecker,
	clock utils.Clock,
	logger *logger.Logger,
) *clientSyncService {
	return &clientSyncService{
		docs:          docs,
		queue:         queue,
		cache:         cache,
		serverAdapter: serverAdapter,
		connectivity:  connectivity,
		clock:         clock,
		logger:        logger,
	}
}

// Sync implements [ClientSyncService].
//
// A pass is skipped, issuing no request, when another pass is in flight,
// the agent is offline, no usable token is set or nothing is pending.
// Otherwise every unsynced entry is sent in queue order. Accepted and
// duplicate entries are marked synced in one write, the last sync time is
// stored, and when anything was synced the cached visit list is refreshed
// from the server.
//
// A started pass ignores cancellation of ctx and runs to completion. When
// the offline store is cleared while the pass runs, its last sync time and
// visit refresh are discarded.
func (s *clientSyncService) Sync(ctx context.Context) (models.SyncResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Debug().Str("func", "*clientSyncService.Sync").Msg("sync already in flight, skipping")
		count, _ := s.queue.PendingCount(ctx)
		return models.SyncResult{Skipped: true, PendingCount: count}, nil
	}
	defer s.running.Store(false)

	ctx = context.WithoutCancel(ctx)
	generation := s.docs.currentGeneration()

	pending, err := s.queue.ListUnsynced(ctx)
	if err != nil {
		return models.SyncResult{Skipped: true}, fmt.Errorf("load pending visits: %w", err)
	}
	skipped := models.SyncResult{Skipped: true, PendingCount: len(pending)}

	if s.connectivity != nil && !s.connectivity.IsOnline() {
		s.logger.Debug().Str("func", "*clientSyncService.Sync").Int("pending", len(pending)).Msg("offline, skipping sync")
		return skipped, nil
	}
	if len(pending) == 0 {
		return skipped, nil
	}
	if !utils.TokenUsable(s.serverAdapter.Token(), s.clock.Now()) {
		s.logger.Info().Str("func", "*clientSyncService.Sync").Int("pending", len(pending)).Msg("no usable auth token, skipping sync")
		return skipped, nil
	}

	var result models.SyncResult
	syncedIDs := make([]string, 0, len(pending))
	for _, p := range pending {
		_, err := s.serverAdapter.CreateVisit(ctx, p.LandmarkID)
		switch {
		case err == nil:
			syncedIDs = append(syncedIDs, p.ID)
		case errors.Is(err, adapter.ErrVisitAlreadyRecorded):
			s.logger.Warn().Err(err).
				Str("func", "*clientSyncService.Sync").
				Str("pending_id", p.ID).
				Str("landmark_id", p.LandmarkID).
				Msg("server rejected visit as already recorded, marking synced")
			syncedIDs = append(syncedIDs, p.ID)
		default:
			s.logger.Warn().Err(err).
				Str("func", "*clientSyncService.Sync").
				Str("pending_id", p.ID).
				Str("landmark_id", p.LandmarkID).
				Msg("visit sync failed, keeping it pending")
			result.Failed++
		}
	}
	result.Synced = len(syncedIDs)

	var errs []error
	pendingCount, err := s.queue.MarkSynced(ctx, syncedIDs)
	if err != nil {
		// the server has these visits; the next pass resolves them as duplicates
		errs = append(errs, fmt.Errorf("persist synced flags: %w", err))
		pendingCount = len(pending)
	}
	result.PendingCount = pendingCount

	now := s.clock.Now()
	saved, err := s.saveLastSync(ctx, now, generation)
	cleared := err == nil && !saved
	switch {
	case err != nil:
		errs = append(errs, err)
	case cleared:
		s.logger.Info().Str("func", "*clientSyncService.Sync").Msg("offline store cleared during sync, discarding sync time")
	default:
		result.LastSyncTime = &now
	}

	if result.Synced > 0 && !cleared {
		s.refreshVisits(ctx, generation)
	}

	s.logger.Info().
		Str("func", "*clientSyncService.Sync").
		Int("synced", result.Synced).
		Int("failed", result.Failed).
		Int("pending", result.PendingCount).
		Msg("sync pass finished")

	return result, errors.Join(errs...)
}

// State implements [ClientSyncService].
func (s *clientSyncService) State(ctx context.Context) (models.SyncState, error) {
	var state models.SyncState

	var last time.Time
	found, err := s.docs.load(ctx, store.KeyLastSync, &last)
	if err != nil {
		return state, err
	}
	if found {
		state.LastSyncTime = &last
	}

	state.PendingCount, err = s.queue.PendingCount(ctx)
	return state, err
}

// InFlight implements [ClientSyncService].
func (s *clientSyncService) InFlight() bool {
	return s.running.Load()
}

// saveLastSync stores t unless the store was cleared after generation.
func (s *clientSyncService) saveLastSync(ctx context.Context, t time.Time, generation uint64) (bool, error) {
	s.docs.mu.Lock()
	defer s.docs.mu.Unlock()

	if s.docs.generation != generation {
		return false, nil
	}
	return true, s.docs.save(ctx, store.KeyLastSync, t)
}

// refreshVisits replaces the cached visit list with the server's. Failures
// and a clear since generation leave the cache as it is.
func (s *clientSyncService) refreshVisits(ctx context.Context, generation uint64) {
	visits, err := s.serverAdapter.ListVisits(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("func", "*clientSyncService.refreshVisits").Msg("error fetching visits after sync")
		return
	}

	written, err := s.cache.replaceVisitsSince(ctx, visits, generation)
	if err != nil {
		s.logger.Err(err).Str("func", "*clientSyncService.refreshVisits").Msg("error caching visits after sync")
		return
	}
	if !written {
		s.logger.Info().Str("func", "*clientSyncService.refreshVisits").Msg("offline store cleared during sync, discarding visits")
	}
}
