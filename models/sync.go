// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncResult is the tally of one Synchronizer pass.
type SyncResult struct {
	// Synced counts entries accepted by the server, including duplicates
	// the server already had.
	Synced int `json:"synced"`

	// Failed counts entries left pending for the next pass.
	Failed int `json:"failed"`

	// Skipped is true when the pass returned before issuing any request
	// (nothing pending, no token, offline or another pass in flight).
	Skipped bool `json:"skipped,omitempty"`

	// PendingCount is the number of unsynced entries after the pass.
	PendingCount int `json:"pending_count"`

	// LastSyncTime is set when the pass completed its loop.
	LastSyncTime *time.Time `json:"last_sync_time,omitempty"`
}

// SyncState is the singleton sync bookkeeping record. PendingCount is
// derived from the pending queue and never persisted.
type SyncState struct {
	LastSyncTime *time.Time `json:"last_sync_time,omitempty"`
	PendingCount int        `json:"pending_count"`
}

// EnqueueResult describes the outcome of queueing a visit.
type EnqueueResult struct {
	// Visit is the queued intent, either newly created or the existing
	// unsynced entry for the same landmark.
	Visit PendingVisit

	// Created is false when an unsynced entry already existed.
	Created bool

	// PendingCount is the number of unsynced entries after the call.
	PendingCount int
}
