// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllKeys(t *testing.T) {
	keys := AllKeys()
	assert.Len(t, keys, 6)
	assert.ElementsMatch(t, []string{
		"offline_landmarks",
		"offline_visits",
		"offline_countries",
		"offline_progress",
		"offline_pending_visits",
		"offline_last_sync",
	}, keys)
}
