// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the durable key-value store the offline layer is
// built on. Values are JSON documents addressed by string keys; every write
// replaces the whole document.
//
// The implementation is backed by sqlite: a file that survives restarts, or
// a private in-memory database for ephemeral runs ([MemoryDSN]). Package
// storetest offers a map-backed [KeyValueStore] for tests.
package store
