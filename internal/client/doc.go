// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the headless sync agent runtime.
//
// It wires storage, the remote API adapter, the connectivity monitor, the
// offline facade and the background workers into a single process
// lifecycle.
package client
