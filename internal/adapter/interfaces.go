// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport-layer client of the remote visits
// API.
//
// The primary abstraction is [ServerAdapter], which decouples the service layer
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrVisitAlreadyRecorded] for a duplicate visit).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-visit-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the remote visits API.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// requests. The token store itself is owned by the host application.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// CreateVisit records a visit to landmarkID (POST /api/visits). A
	// duplicate rejection by the server is reported as
	// [ErrVisitAlreadyRecorded].
	CreateVisit(ctx context.Context, landmarkID string) (models.Visit, error)

	// ListVisits fetches the authoritative visit list (GET /api/visits).
	ListVisits(ctx context.Context) ([]models.Visit, error)
}
