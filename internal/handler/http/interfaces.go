// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"

	"github.com/MKhiriev/go-visit-keeper/models"
)

// Facade is the part of the offline facade served by the control API.
type Facade interface {
	State() models.OfflineState
	QueueVisit(ctx context.Context, landmarkID string) (models.EnqueueResult, bool)
	PendingVisits(ctx context.Context) []models.PendingVisit
	CachedVisits(ctx context.Context) ([]models.CachedVisit, bool)
	SyncNow(ctx context.Context) models.SyncResult
	ClearCache(ctx context.Context) bool
}
