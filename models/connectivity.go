// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ConnectivityStatus is the outcome of one connectivity probe or platform
// notification.
type ConnectivityStatus struct {
	// IsConnected reports whether a network link is available.
	IsConnected bool `json:"is_connected"`

	// IsInternetReachable is nil when reachability is unknown.
	IsInternetReachable *bool `json:"is_internet_reachable,omitempty"`

	CheckedAt time.Time `json:"checked_at"`
}

// Online derives the online flag. Unknown reachability counts as online.
func (s ConnectivityStatus) Online() bool {
	return s.IsConnected && (s.IsInternetReachable == nil || *s.IsInternetReachable)
}

// ConnectivityState is the process-lifetime connectivity record. It is
// never persisted.
type ConnectivityState struct {
	IsOnline      bool `json:"is_online"`
	IsInitialized bool `json:"is_initialized"`
}

// ConnectivityEvent is emitted by the network monitor whenever the derived
// online flag changes.
type ConnectivityEvent struct {
	Previous ConnectivityState
	Current  ConnectivityState
	Status   ConnectivityStatus
}

// CameOnline reports a transition from not-online to online.
func (e ConnectivityEvent) CameOnline() bool {
	return !e.Previous.IsOnline && e.Current.IsOnline
}

// Reachable is a helper for building IsInternetReachable values.
func Reachable(v bool) *bool {
	return &v
}
