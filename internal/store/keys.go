// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

// Keys of the documents persisted by the offline layer.
const (
	KeyLandmarks     = "offline_landmarks"
	KeyVisits        = "offline_visits"
	KeyCountries     = "offline_countries"
	KeyProgress      = "offline_progress"
	KeyPendingVisits = "offline_pending_visits"
	KeyLastSync      = "offline_last_sync"
)

// AllKeys lists every key owned by the offline layer.
func AllKeys() []string {
	return []string{
		KeyLandmarks,
		KeyVisits,
		KeyCountries,
		KeyProgress,
		KeyPendingVisits,
		KeyLastSync,
	}
}
