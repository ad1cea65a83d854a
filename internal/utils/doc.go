// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helpers used across the agent:
// the resty-based HTTP client, pending visit id generation, the injectable
// clock and bearer token inspection.
package utils
