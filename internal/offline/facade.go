// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package offline

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/MKhiriev/go-visit-keeper/internal/logger"
	"github.com/MKhiriev/go-visit-keeper/internal/service"
	"github.com/MKhiriev/go-visit-keeper/internal/utils"
	"github.com/MKhiriev/go-visit-keeper/models"
)

// ConnectivityMonitor is the part of the network monitor the facade needs.
type ConnectivityMonitor interface {
	Init(ctx context.Context) models.ConnectivityState
	State() models.ConnectivityState
	Subscribe() (<-chan models.ConnectivityEvent, func())
}

// Facade is the offline subsystem as seen by the rest of the application.
type Facade struct {
	services *service.ClientServices
	monitor  ConnectivityMonitor
	logger   *logger.Logger

	mu    sync.RWMutex
	state models.OfflineState

	watchers *utils.Broadcaster[models.OfflineState]

	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewFacade creates a Facade. The services must share monitor as their
// connectivity checker. Call [Facade.Start] to begin reacting to
// connectivity changes.
func NewFacade(services *service.ClientServices, monitor ConnectivityMonitor, logger *logger.Logger) *Facade {
	return &Facade{
		services: services,
		monitor:  monitor,
		logger:   logger,
		watchers: utils.NewBroadcaster[models.OfflineState](),
		done:     make(chan struct{}),
	}
}

// Start loads the persisted sync state, resolves the initial connectivity
// and launches the loop that syncs on every offline to online transition.
// A pass runs right away when the initial probe finds the agent online.
// Start is a no-op after the first call.
func (f *Facade) Start(ctx context.Context) {
	f.startOnce.Do(func() {
		f.RefreshState(ctx)

		events, unsubscribe := f.monitor.Subscribe()
		loopCtx, cancel := context.WithCancel(ctx)
		f.cancel = cancel

		f.monitor.Init(ctx)
		f.setConnectivity(f.monitor.State())

		go f.loop(loopCtx, events, unsubscribe)
	})
}

// Close stops the event loop and closes every Watch channel.
func (f *Facade) Close() {
	f.stopOnce.Do(func() {
		if f.cancel != nil {
			f.cancel()
			<-f.done
		}
		f.watchers.Close()
	})
}

func (f *Facade) loop(ctx context.Context, events <-chan models.ConnectivityEvent, unsubscribe func()) {
	defer close(f.done)
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			f.setConnectivity(ev.Current)
			if ev.CameOnline() {
				f.logger.Info().Str("func", "*Facade.loop").Msg("came online, syncing pending visits")
				f.SyncNow(ctx)
			}
		}
	}
}

// ── observable state ─────────────────────────────────────────────────────────

// State returns a snapshot of the observable state.
func (f *Facade) State() models.OfflineState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state
}

// IsOnline reports the last known connectivity.
func (f *Facade) IsOnline() bool {
	return f.State().IsOnline
}

// Watch subscribes to state updates. Only the latest unread state is kept.
func (f *Facade) Watch() (<-chan models.OfflineState, func()) {
	return f.watchers.Subscribe()
}

// RefreshState reloads the pending count and last sync time from storage.
func (f *Facade) RefreshState(ctx context.Context) {
	syncState, err := f.services.SyncService.State(ctx)
	if err != nil {
		f.logger.Err(err).Str("func", "*Facade.RefreshState").Msg("error loading sync state")
		return
	}

	f.update(func(s *models.OfflineState) {
		s.PendingVisitsCount = syncState.PendingCount
		s.LastSyncTime = syncState.LastSyncTime
	})
}

func (f *Facade) setConnectivity(c models.ConnectivityState) {
	f.update(func(s *models.OfflineState) {
		s.IsOnline = c.IsOnline
		s.IsInitialized = c.IsInitialized
	})
}

// update applies fn to the state and publishes the result when it changed.
func (f *Facade) update(fn func(*models.OfflineState)) {
	f.mu.Lock()
	prev := f.state
	fn(&f.state)
	cur := f.state
	f.mu.Unlock()

	if !sameState(prev, cur) {
		f.watchers.Publish(cur)
	}
}

func sameState(a, b models.OfflineState) bool {
	if a.IsOnline != b.IsOnline || a.IsInitialized != b.IsInitialized || a.PendingVisitsCount != b.PendingVisitsCount {
		return false
	}
	if a.LastSyncTime == nil || b.LastSyncTime == nil {
		return a.LastSyncTime == b.LastSyncTime
	}
	return a.LastSyncTime.Equal(*b.LastSyncTime)
}

// ── queue and sync ───────────────────────────────────────────────────────────

// QueueVisit records an intent to visit landmarkID and shows it in the
// cached visit list right away. It reports false when nothing was queued.
func (f *Facade) QueueVisit(ctx context.Context, landmarkID string) (models.EnqueueResult, bool) {
	res, err := f.services.QueueService.Enqueue(ctx, landmarkID)
	if err != nil {
		f.logger.Err(err).
			Str("func", "*Facade.QueueVisit").
			Str("landmark_id", landmarkID).
			Msg("error queueing visit")
		return models.EnqueueResult{}, false
	}

	f.update(func(s *models.OfflineState) {
		s.PendingVisitsCount = res.PendingCount
	})
	return res, true
}

// PendingVisits lists unsynced visits, oldest first.
func (f *Facade) PendingVisits(ctx context.Context) []models.PendingVisit {
	pending, err := f.services.QueueService.ListUnsynced(ctx)
	if err != nil {
		f.logger.Err(err).Str("func", "*Facade.PendingVisits").Msg("error listing pending visits")
		return nil
	}
	return pending
}

// SyncNow runs one sync pass and folds its result into the state. It
// implements [service.Syncer].
func (f *Facade) SyncNow(ctx context.Context) models.SyncResult {
	res, err := f.services.SyncService.Sync(ctx)
	if err != nil {
		f.logger.Err(err).Str("func", "*Facade.SyncNow").Msg("sync pass finished with errors")
	}
	if res.Skipped && err != nil {
		return res
	}

	f.update(func(s *models.OfflineState) {
		s.PendingVisitsCount = res.PendingCount
		if res.LastSyncTime != nil {
			t := *res.LastSyncTime
			s.LastSyncTime = &t
		}
	})
	return res
}

// ClearCache removes every offline document and resets the counters. It
// reports false when storage could not be cleared.
func (f *Facade) ClearCache(ctx context.Context) bool {
	if err := f.services.QueueService.ClearAll(ctx); err != nil {
		f.logger.Err(err).Str("func", "*Facade.ClearCache").Msg("error clearing offline storage")
		return false
	}

	f.update(func(s *models.OfflineState) {
		s.PendingVisitsCount = 0
		s.LastSyncTime = nil
	})
	return true
}

// ── cache ────────────────────────────────────────────────────────────────────

// CacheLandmarks stores the landmarks of one country.
func (f *Facade) CacheLandmarks(ctx context.Context, countryID string, landmarks any) {
	f.logWrite(f.services.CacheService.CacheLandmarks(ctx, countryID, landmarks), "*Facade.CacheLandmarks")
}

// CachedLandmarks returns the landmarks cached for countryID.
func (f *Facade) CachedLandmarks(ctx context.Context, countryID string) (json.RawMessage, bool) {
	raw, err := f.services.CacheService.GetCachedLandmarks(ctx, countryID)
	return raw, f.logRead(err, "*Facade.CachedLandmarks")
}

// CacheVisits overwrites the cached visit list.
func (f *Facade) CacheVisits(ctx context.Context, visits []models.Visit) {
	cached := make([]models.CachedVisit, 0, len(visits))
	for _, v := range visits {
		cached = append(cached, models.ConfirmedVisit(v))
	}
	f.logWrite(f.services.CacheService.CacheVisits(ctx, cached), "*Facade.CacheVisits")
}

// CachedVisits returns the cached visit list, shadows of queued visits
// included.
func (f *Facade) CachedVisits(ctx context.Context) ([]models.CachedVisit, bool) {
	visits, err := f.services.CacheService.GetCachedVisits(ctx)
	return visits, f.logRead(err, "*Facade.CachedVisits")
}

// CacheCountries stores the country list.
func (f *Facade) CacheCountries(ctx context.Context, countries any) {
	f.logWrite(f.services.CacheService.CacheCountries(ctx, countries), "*Facade.CacheCountries")
}

// CachedCountries returns the cached country list.
func (f *Facade) CachedCountries(ctx context.Context) (json.RawMessage, bool) {
	raw, err := f.services.CacheService.GetCachedCountries(ctx)
	return raw, f.logRead(err, "*Facade.CachedCountries")
}

// CacheProgress stores the aggregate progress.
func (f *Facade) CacheProgress(ctx context.Context, progress any) {
	f.logWrite(f.services.CacheService.CacheProgress(ctx, progress), "*Facade.CacheProgress")
}

// CachedProgress returns the cached aggregate progress.
func (f *Facade) CachedProgress(ctx context.Context) (json.RawMessage, bool) {
	raw, err := f.services.CacheService.GetCachedProgress(ctx)
	return raw, f.logRead(err, "*Facade.CachedProgress")
}

func (f *Facade) logWrite(err error, fn string) {
	if err != nil {
		f.logger.Err(err).Str("func", fn).Msg("error writing offline cache")
	}
}

// logRead reports whether a read produced a value. Plain misses are not
// logged.
func (f *Facade) logRead(err error, fn string) bool {
	if err == nil {
		return true
	}
	if !errors.Is(err, service.ErrCacheMiss) || errors.Is(err, service.ErrStorage) {
		f.logger.Err(err).Str("func", fn).Msg("error reading offline cache")
	} else if errors.Unwrap(err) != nil {
		f.logger.Warn().Err(err).Str("func", fn).Msg("corrupt offline cache entry")
	}
	return false
}
