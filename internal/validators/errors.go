// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyLandmarkID   = errors.New("landmark_id is required")
	ErrLandmarkIDTooLong = errors.New("landmark_id is too long")
	ErrInvalidLandmarkID = errors.New("landmark_id contains invalid characters")
	ErrEmptyVisitID      = errors.New("visit id is required")
	ErrInvalidPendingID  = errors.New("pending visit id must start with pending_")
	ErrEmptyTimestamp    = errors.New("timestamp is required")
)
