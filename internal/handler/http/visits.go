// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-visit-keeper/models"
)

// maxQueueVisitBody bounds the POST /api/visits body.
const maxQueueVisitBody = 4 << 10

type queueVisitResponse struct {
	Visit        models.PendingVisit `json:"visit"`
	Created      bool                `json:"created"`
	PendingCount int                 `json:"pending_count"`
}

func (h *Handler) getCachedVisits(w http.ResponseWriter, r *http.Request) {
	visits, ok := h.facade.CachedVisits(r.Context())
	if !ok {
		visits = []models.CachedVisit{}
	}
	writeJSON(w, r, http.StatusOK, visits)
}

func (h *Handler) getPendingVisits(w http.ResponseWriter, r *http.Request) {
	pending := h.facade.PendingVisits(r.Context())
	if pending == nil {
		pending = []models.PendingVisit{}
	}
	writeJSON(w, r, http.StatusOK, pending)
}

// queueVisit answers 202 for a new intent and 200 when the landmark was
// already queued. Bodies over maxQueueVisitBody get 413.
func (h *Handler) queueVisit(w http.ResponseWriter, r *http.Request) {
	var body models.CreateVisitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQueueVisitBody)).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, ErrRequestTooLarge)
			return
		}
		writeError(w, r, http.StatusBadRequest, ErrInvalidRequestBody)
		return
	}
	if err := h.validator.Validate(r.Context(), body); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	res, ok := h.facade.QueueVisit(r.Context(), body.LandmarkID)
	if !ok {
		writeError(w, r, http.StatusInternalServerError, ErrNotQueued)
		return
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusAccepted
	}
	writeJSON(w, r, status, queueVisitResponse{
		Visit:        res.Visit,
		Created:      res.Created,
		PendingCount: res.PendingCount,
	})
}
