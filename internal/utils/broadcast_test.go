// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcaster_LatestWins(t *testing.T) {
	b := NewBroadcaster[int]()
	ch, unsubscribe := b.Subscribe()
	defer unsubscribe()

	b.Publish(1)
	b.Publish(2)
	b.Publish(3)

	assert.Equal(t, 3, <-ch)
	select {
	case v := <-ch:
		t.Fatalf("unexpected extra value %d", v)
	default:
	}
}

func TestBroadcaster_FanOut(t *testing.T) {
	b := NewBroadcaster[string]()
	first, unsubFirst := b.Subscribe()
	second, unsubSecond := b.Subscribe()
	defer unsubFirst()
	defer unsubSecond()

	require.Equal(t, 2, b.Len())
	b.Publish("online")

	assert.Equal(t, "online", <-first)
	assert.Equal(t, "online", <-second)
}

func TestBroadcaster_Unsubscribe(t *testing.T) {
	b := NewBroadcaster[int]()
	ch, unsubscribe := b.Subscribe()

	unsubscribe()
	unsubscribe()

	_, ok := <-ch
	assert.False(t, ok)
	assert.Zero(t, b.Len())
	assert.NotPanics(t, func() { b.Publish(1) })
}

func TestBroadcaster_Close(t *testing.T) {
	b := NewBroadcaster[int]()
	ch, unsubscribe := b.Subscribe()

	b.Close()
	b.Close()

	_, ok := <-ch
	assert.False(t, ok)
	assert.NotPanics(t, unsubscribe)
	assert.NotPanics(t, func() { b.Publish(1) })

	late, _ := b.Subscribe()
	_, ok = <-late
	assert.False(t, ok)
}
