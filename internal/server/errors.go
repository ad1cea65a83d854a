// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// ErrNoAddress is returned when the control API has no listen address.
var ErrNoAddress = errors.New("no listen address configured")
