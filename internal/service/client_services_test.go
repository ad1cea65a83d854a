// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-visit-keeper/internal/logger"
	"github.com/MKhiriev/go-visit-keeper/internal/mock"
	"github.com/MKhiriev/go-visit-keeper/internal/store"
	"github.com/MKhiriev/go-visit-keeper/internal/store/storetest"
	"github.com/MKhiriev/go-visit-keeper/internal/utils"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// fakeConnectivity is a switchable ConnectivityChecker.
type fakeConnectivity struct {
	online atomic.Bool
}

func newFakeConnectivity(online bool) *fakeConnectivity {
	c := &fakeConnectivity{}
	c.online.Store(online)
	return c
}

func (c *fakeConnectivity) IsOnline() bool { return c.online.Load() }

// seqIDs generates predictable pending ids.
type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) Generate(now time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("pending_%d_%09d", now.UnixMilli(), g.n)
}

// testEnv bundles the services under test with their collaborators.
type testEnv struct {
	ctrl    *gomock.Controller
	adapter *mock.MockServerAdapter
	kv      store.KeyValueStore
	online  *fakeConnectivity
	svc     *ClientServices
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithStore(t, storetest.NewKeyValueStore())
}

func newTestEnvWithStore(t *testing.T, kv store.KeyValueStore) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)
	online := newFakeConnectivity(true)

	svc := NewClientServices(Deps{
		Store:         kv,
		ServerAdapter: serverAdapter,
		Connectivity:  online,
		Clock:         utils.FixedClock{T: testNow},
		IDs:           &seqIDs{},
		Logger:        logger.Nop(),
	})

	return &testEnv{ctrl: ctrl, adapter: serverAdapter, kv: kv, online: online, svc: svc}
}

func (e *testEnv) enqueue(t *testing.T, landmarkIDs ...string) {
	t.Helper()
	for _, id := range landmarkIDs {
		_, err := e.svc.QueueService.Enqueue(context.Background(), id)
		require.NoError(t, err)
	}
}

func (e *testEnv) raw(t *testing.T, key string) string {
	t.Helper()
	v, err := e.kv.Get(context.Background(), key)
	require.NoError(t, err)
	return v
}
