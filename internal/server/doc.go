// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the agent's local control API.
//
// The HTTP server is started and stopped by a context so it can run as one
// of the agent's background workers, with graceful shutdown when the
// context is done.
package server
