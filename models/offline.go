// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// OfflineState is the observable state exposed by the offline facade.
type OfflineState struct {
	IsOnline           bool       `json:"is_online"`
	IsInitialized      bool       `json:"is_initialized"`
	PendingVisitsCount int        `json:"pending_visits_count"`
	LastSyncTime       *time.Time `json:"last_sync_time,omitempty"`
}
