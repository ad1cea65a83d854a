// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-visit-keeper/internal/logger"
	"github.com/MKhiriev/go-visit-keeper/internal/mock"
	"github.com/MKhiriev/go-visit-keeper/internal/store"
	"github.com/MKhiriev/go-visit-keeper/internal/utils"
	"github.com/MKhiriev/go-visit-keeper/models"
)

// ── Enqueue ──────────────────────────────────────────────────────────────────

func TestQueue_Enqueue_CreatesEntryAndShadow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.svc.QueueService.Enqueue(ctx, "landmark_42")
	require.NoError(t, err)

	assert.True(t, res.Created)
	assert.Equal(t, 1, res.PendingCount)
	assert.Equal(t, "landmark_42", res.Visit.LandmarkID)
	assert.Equal(t, "pending_1772366400000_000000001", res.Visit.ID)
	assert.True(t, res.Visit.Timestamp.Equal(testNow))
	assert.False(t, res.Visit.Synced)

	cached, err := env.svc.CacheService.GetCachedVisits(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, models.VisitKindPending, cached[0].Kind())
	assert.Equal(t, res.Visit.ID, cached[0].Pending.ID)
}

func TestQueue_Enqueue_IsIdempotentPerLandmark(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.svc.QueueService.Enqueue(ctx, "landmark_1")
	require.NoError(t, err)
	second, err := env.svc.QueueService.Enqueue(ctx, "  landmark_1 ")
	require.NoError(t, err)

	assert.False(t, second.Created)
	assert.Equal(t, first.Visit, second.Visit)
	assert.Equal(t, 1, second.PendingCount)

	count, err := env.svc.QueueService.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	cached, err := env.svc.CacheService.GetCachedVisits(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 1, "a duplicate intent must not add a second shadow")
}

func TestQueue_Enqueue_AfterSyncCreatesNewEntry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.svc.QueueService.Enqueue(ctx, "landmark_1")
	require.NoError(t, err)
	_, err = env.svc.QueueService.MarkSynced(ctx, []string{first.Visit.ID})
	require.NoError(t, err)

	second, err := env.svc.QueueService.Enqueue(ctx, "landmark_1")
	require.NoError(t, err)
	assert.True(t, second.Created)
	assert.NotEqual(t, first.Visit.ID, second.Visit.ID)
}

func TestQueue_Enqueue_EmptyLandmark(t *testing.T) {
	env := newTestEnv(t)

	for _, id := range []string{"", "   "} {
		_, err := env.svc.QueueService.Enqueue(context.Background(), id)
		assert.ErrorIs(t, err, ErrEmptyLandmarkID)
	}
}

func TestQueue_Enqueue_CorruptQueue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.kv.Set(ctx, store.KeyPendingVisits, "[{"))

	_, err := env.svc.QueueService.Enqueue(ctx, "landmark_1")
	require.Error(t, err)
	assert.Equal(t, "[{", env.raw(t, store.KeyPendingVisits), "a corrupt queue must not be overwritten")

	require.NoError(t, env.svc.QueueService.ClearAll(ctx))
	_, err = env.svc.QueueService.Enqueue(ctx, "landmark_1")
	assert.NoError(t, err)
}

func TestQueue_Enqueue_StorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv := mock.NewMockKeyValueStore(ctrl)
	svc := NewClientServices(Deps{Store: kv, Clock: utils.FixedClock{T: testNow}, IDs: &seqIDs{}, Logger: logger.Nop()})

	diskErr := errors.New("database is locked")
	kv.EXPECT().Get(gomock.Any(), store.KeyPendingVisits).Return("", store.ErrKeyNotFound)
	kv.EXPECT().Set(gomock.Any(), store.KeyPendingVisits, gomock.Any()).Return(diskErr)

	_, err := svc.QueueService.Enqueue(context.Background(), "landmark_1")
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, diskErr)
}

func TestQueue_Enqueue_ShadowFailureKeepsIntent(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv := mock.NewMockKeyValueStore(ctrl)
	svc := NewClientServices(Deps{Store: kv, Clock: utils.FixedClock{T: testNow}, IDs: &seqIDs{}, Logger: logger.Nop()})

	gomock.InOrder(
		kv.EXPECT().Get(gomock.Any(), store.KeyPendingVisits).Return("", store.ErrKeyNotFound),
		kv.EXPECT().Set(gomock.Any(), store.KeyPendingVisits, gomock.Any()).Return(nil),
		kv.EXPECT().Get(gomock.Any(), store.KeyVisits).Return("", errors.New("disk full")),
	)

	res, err := svc.QueueService.Enqueue(context.Background(), "landmark_1")
	require.NoError(t, err)
	assert.True(t, res.Created)
}

func TestQueue_ConcurrentEnqueues(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.svc.QueueService.Enqueue(ctx, fmt.Sprintf("landmark_%d", i))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	pending, err := env.svc.QueueService.ListUnsynced(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, n)

	cached, err := env.svc.CacheService.GetCachedVisits(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, n)
}

// ── ListUnsynced / MarkSynced ────────────────────────────────────────────────

func TestQueue_ListUnsynced_FIFO(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	pending, err := env.svc.QueueService.ListUnsynced(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	env.enqueue(t, "c", "a", "b")

	pending, err = env.svc.QueueService.ListUnsynced(ctx)
	require.NoError(t, err)

	got := make([]string, 0, len(pending))
	for _, p := range pending {
		got = append(got, p.LandmarkID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, got)
}

func TestQueue_MarkSynced_KeepsConcurrentEntries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.enqueue(t, "landmark_1")

	snapshot, err := env.svc.QueueService.ListUnsynced(ctx)
	require.NoError(t, err)

	// enqueued after the snapshot, as if during a sync pass
	env.enqueue(t, "landmark_2")

	remaining, err := env.svc.QueueService.MarkSynced(ctx, []string{snapshot[0].ID})
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)

	pending, err := env.svc.QueueService.ListUnsynced(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "landmark_2", pending[0].LandmarkID)

	assert.Contains(t, env.raw(t, store.KeyPendingVisits), `"synced":true`, "synced entries stay as audit records")
}

func TestQueue_MarkSynced_UnknownIDs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.enqueue(t, "landmark_1")
	before := env.raw(t, store.KeyPendingVisits)

	remaining, err := env.svc.QueueService.MarkSynced(ctx, []string{"pending_0_nothere"})
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)
	assert.Equal(t, before, env.raw(t, store.KeyPendingVisits))
}

// ── ClearAll ─────────────────────────────────────────────────────────────────

func TestQueue_ClearAll(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.enqueue(t, "landmark_1")
	require.NoError(t, env.svc.CacheService.CacheCountries(ctx, []string{"FR"}))
	require.NoError(t, env.svc.CacheService.CacheLandmarks(ctx, "FR", []string{"eiffel"}))
	require.NoError(t, env.svc.CacheService.CacheProgress(ctx, 1))
	require.NoError(t, env.kv.Set(ctx, store.KeyLastSync, `"2026-03-01T12:00:00Z"`))

	require.NoError(t, env.svc.QueueService.ClearAll(ctx))

	for _, key := range store.AllKeys() {
		_, err := env.kv.Get(ctx, key)
		assert.ErrorIs(t, err, store.ErrKeyNotFound, key)
	}

	count, err := env.svc.QueueService.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
