// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CreateVisitRequest is the body of POST /api/visits.
type CreateVisitRequest struct {
	LandmarkID string `json:"landmark_id"`
}
