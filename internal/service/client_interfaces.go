// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MKhiriev/go-visit-keeper/models"
)

// ClientCacheService stores last-known-good snapshots of server collections
// for display while offline. Payloads other than visits are opaque JSON owned
// by the caller. Getters return [ErrCacheMiss] when nothing usable is stored.
type ClientCacheService interface {
	// CacheLandmarks stores landmarks under countryID, keeping the landmarks
	// cached for every other country.
	CacheLandmarks(ctx context.Context, countryID string, landmarks any) error
	GetCachedLandmarks(ctx context.Context, countryID string) (json.RawMessage, error)

	// CacheVisits overwrites the cached visit list.
	CacheVisits(ctx context.Context, visits []models.CachedVisit) error
	GetCachedVisits(ctx context.Context) ([]models.CachedVisit, error)

	CacheCountries(ctx context.Context, countries any) error
	GetCachedCountries(ctx context.Context) (json.RawMessage, error)

	CacheProgress(ctx context.Context, progress any) error
	GetCachedProgress(ctx context.Context) (json.RawMessage, error)

	// AppendShadowVisit adds an optimistic record of a queued visit to the
	// cached visit list.
	AppendShadowVisit(ctx context.Context, visit models.PendingVisit) error

	// ReplaceVisits overwrites the cached visit list with the server's list
	// and re-appends shadows of visits that are still unsynced.
	ReplaceVisits(ctx context.Context, visits []models.Visit) error
}

// ClientQueueService is the durable queue of visit intents not yet
// acknowledged by the server. Every mutation is a read-modify-write of the
// whole queue document done under one lock.
type ClientQueueService interface {
	// Enqueue records an intent to visit landmarkID. When an unsynced entry
	// for the landmark already exists it is returned unchanged.
	Enqueue(ctx context.Context, landmarkID string) (models.EnqueueResult, error)

	// ListUnsynced returns unsynced entries, oldest first.
	ListUnsynced(ctx context.Context) ([]models.PendingVisit, error)

	// PendingCount returns the number of unsynced entries.
	PendingCount(ctx context.Context) (int, error)

	// MarkSynced flips the synced flag of the entries with the given ids in
	// one write and returns the remaining pending count.
	MarkSynced(ctx context.Context, ids []string) (int, error)

	// ClearAll removes every offline document: the four caches, the queue
	// and the last sync marker.
	ClearAll(ctx context.Context) error
}

// ClientSyncService drains the queue against the remote API.
type ClientSyncService interface {
	// Sync runs one pass. Overlapping calls return a skipped result
	// without touching the queue.
	Sync(ctx context.Context) (models.SyncResult, error)

	// State returns the last sync time and the current pending count.
	State(ctx context.Context) (models.SyncState, error)

	// InFlight reports whether a pass is running.
	InFlight() bool
}

// ClientSyncJob periodically triggers a sync pass.
type ClientSyncJob interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
	Run(ctx context.Context)
}

// Syncer runs one sync pass on behalf of a trigger.
type Syncer interface {
	SyncNow(ctx context.Context) models.SyncResult
}

// ConnectivityChecker reports whether the agent is online.
type ConnectivityChecker interface {
	IsOnline() bool
}
