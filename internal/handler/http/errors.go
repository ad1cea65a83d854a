// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrInvalidRequestBody is returned when a request body is not valid JSON.
	ErrInvalidRequestBody = errors.New("invalid request body")

	// ErrRequestTooLarge is returned when a request body exceeds its limit.
	ErrRequestTooLarge = errors.New("request body too large")

	// ErrNotQueued is returned when the facade could not queue a visit.
	ErrNotQueued = errors.New("visit was not queued")

	// ErrNotCleared is returned when the offline store could not be cleared.
	ErrNotCleared = errors.New("offline store was not cleared")
)
