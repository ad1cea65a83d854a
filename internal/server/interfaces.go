// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle contract for transport servers managed by
// this package.
type Server interface {
	// Run serves requests until ctx is done, then shuts down gracefully.
	Run(ctx context.Context)

	// Addr returns the address the server listens on once started.
	Addr() string
}
