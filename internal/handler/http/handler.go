// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-visit-keeper/internal/logger"
	"github.com/MKhiriev/go-visit-keeper/internal/validators"
	"github.com/MKhiriev/go-visit-keeper/models"
)

type Handler struct {
	facade    Facade
	buildInfo models.AppBuildInfo
	validator validators.Validator

	logger *logger.Logger
}

func NewHandler(facade Facade, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("control api handler created")
	return &Handler{
		facade:    facade,
		buildInfo: buildInfo,
		validator: validators.NewVisitValidator(),
		logger:    logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "writeJSON").Msg("error encoding response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	writeJSON(w, r, status, errorResponse{Error: err.Error()})
}
