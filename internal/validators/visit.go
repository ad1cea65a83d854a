// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-visit-keeper/internal/utils"
	"github.com/MKhiriev/go-visit-keeper/models"
)

// Field names accepted by [VisitValidator].
const (
	FieldID         = "id"
	FieldLandmarkID = "landmark_id"
	FieldCreatedAt  = "created_at"
	FieldTimestamp  = "timestamp"
)

// MaxLandmarkIDLength bounds the landmark id so it stays usable as part of
// a storage key.
const MaxLandmarkIDLength = 128

type VisitValidator struct{}

func NewVisitValidator() Validator {
	return &VisitValidator{}
}

func (v *VisitValidator) Validate(_ context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreateVisitRequest:
		return v.validateCreateRequest(value, fields...)
	case *models.CreateVisitRequest:
		return v.validateCreateRequest(*value, fields...)

	case models.Visit:
		return v.validateVisit(value, fields...)
	case *models.Visit:
		return v.validateVisit(*value, fields...)

	case models.PendingVisit:
		return v.validatePendingVisit(value, fields...)
	case *models.PendingVisit:
		return v.validatePendingVisit(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *VisitValidator) validateCreateRequest(req models.CreateVisitRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLandmarkID}
	}

	for _, f := range fields {
		switch f {
		case FieldLandmarkID:
			if err := validateLandmarkID(req.LandmarkID); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *VisitValidator) validateVisit(visit models.Visit, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldLandmarkID, FieldCreatedAt}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if visit.ID == "" {
				return ErrEmptyVisitID
			}
		case FieldLandmarkID:
			if err := validateLandmarkID(visit.LandmarkID); err != nil {
				return err
			}
		case FieldCreatedAt:
			if visit.CreatedAt.IsZero() {
				return ErrEmptyTimestamp
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *VisitValidator) validatePendingVisit(p models.PendingVisit, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldLandmarkID, FieldTimestamp}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if !utils.IsPendingID(p.ID) {
				return ErrInvalidPendingID
			}
		case FieldLandmarkID:
			if err := validateLandmarkID(p.LandmarkID); err != nil {
				return err
			}
		case FieldTimestamp:
			if p.Timestamp.IsZero() {
				return ErrEmptyTimestamp
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func validateLandmarkID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrEmptyLandmarkID
	}
	if len(id) > MaxLandmarkIDLength {
		return ErrLandmarkIDTooLong
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return ErrInvalidLandmarkID
		}
	}
	return nil
}
