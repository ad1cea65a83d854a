// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the local control API of the sync agent.
//
// The API lets a host process or an operator inspect the offline state,
// queue visits, trigger a sync pass and clear the offline store. Requests
// get a trace id and an access log entry before they reach the offline
// facade.
package http
