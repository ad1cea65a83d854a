// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks visit payloads before they reach the offline
// queue.
//
// A Validator accepts a value and an optional list of field names. When no
// fields are given every known field of the value is checked.
package validators

import "context"

// Validator validates v, optionally restricted to the named fields.
type Validator interface {
	Validate(ctx context.Context, v any, fields ...string) error
}
