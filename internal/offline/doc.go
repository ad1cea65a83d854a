// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package offline provides the single entry point of the offline subsystem.
//
// A [Facade] composes the read-through cache, the pending visit queue, the
// synchronizer and the network monitor. It triggers a sync pass whenever the
// monitor reports that the agent came online, and it exposes the observable
// [models.OfflineState]. Errors from the layers below are logged here and
// turned into absent values or no-ops.
package offline
