// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-visit-keeper/internal/config"
	"github.com/MKhiriev/go-visit-keeper/internal/logger"
	"github.com/MKhiriev/go-visit-keeper/internal/utils"
	"github.com/MKhiriev/go-visit-keeper/models"
)

const visitsPath = "/api/visits"

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and request
// timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := utils.NormalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(adapterCfg.RequestTimeout)
	client.
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")

	return &httpServerAdapter{client: client, logger: logger}, nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// CreateVisit implements [ServerAdapter]. It POSTs {landmark_id} to
// POST /api/visits and decodes the created visit when the server returns
// one. HTTP 400 and 409 are wrapped with [ErrVisitAlreadyRecorded] in
// addition to their status error, so the body stays available for logs.
func (h *httpServerAdapter) CreateVisit(ctx context.Context, landmarkID string) (models.Visit, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.CreateVisitRequest{LandmarkID: landmarkID}).
		Post(visitsPath)
	if err != nil {
		return models.Visit{}, fmt.Errorf("create visit request: %w", err)
	}

	if err = mapHTTPError(resp); err != nil {
		if isDuplicateVisit(resp) {
			return models.Visit{}, fmt.Errorf("%w: %w", ErrVisitAlreadyRecorded, err)
		}
		return models.Visit{}, err
	}

	visit := models.Visit{LandmarkID: landmarkID}
	if body := resp.Body(); len(strings.TrimSpace(string(body))) > 0 {
		if err = json.Unmarshal(body, &visit); err != nil {
			// the visit is recorded; an unexpected body must not turn it into a retry
			h.logger.Warn().Err(err).
				Str("func", "*httpServerAdapter.CreateVisit").
				Str("landmark_id", landmarkID).
				Msg("could not decode create visit response")
			visit = models.Visit{LandmarkID: landmarkID}
		}
	}

	return visit, nil
}

// ListVisits implements [ServerAdapter]. It issues GET /api/visits and decodes
// the response into a slice of [models.Visit].
func (h *httpServerAdapter) ListVisits(ctx context.Context) ([]models.Visit, error) {
	resp, err := h.authedRequest(ctx).Get(visitsPath)
	if err != nil {
		return nil, fmt.Errorf("list visits request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var visits []models.Visit
	if err = json.Unmarshal(resp.Body(), &visits); err != nil {
		return nil, fmt.Errorf("decode visits response: %w", err)
	}
	if visits == nil {
		visits = []models.Visit{}
	}

	return visits, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
