// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-visit-keeper/internal/adapter"
	"github.com/MKhiriev/go-visit-keeper/internal/logger"
	"github.com/MKhiriev/go-visit-keeper/internal/store"
	"github.com/MKhiriev/go-visit-keeper/internal/utils"
)

// ClientServices groups the offline services. All of them share one view of
// the key-value store and one document lock.
type ClientServices struct {
	CacheService ClientCacheService
	QueueService ClientQueueService
	SyncService  ClientSyncService
}

// Deps holds the collaborators injected into [NewClientServices].
type Deps struct {
	Store         store.KeyValueStore
	ServerAdapter adapter.ServerAdapter
	Connectivity  ConnectivityChecker
	Clock         utils.Clock
	IDs           utils.IDGenerator
	Logger        *logger.Logger
}

// NewClientServices wires the cache, queue and sync services. Nil Clock and
// IDs default to [utils.SystemClock] and [utils.UUIDGenerator].
func NewClientServices(deps Deps) *ClientServices {
	if deps.Clock == nil {
		deps.Clock = utils.SystemClock{}
	}
	if deps.IDs == nil {
		deps.IDs = utils.NewUUIDGenerator()
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}

	docs := newDocuments(deps.Store)
	cacheSvc := newClientCacheService(docs)
	queueSvc := newClientQueueService(docs, cacheSvc, deps.IDs, deps.Clock, deps.Logger.WithComponent("queue"))
	syncSvc := newClientSyncService(docs, queueSvc, cacheSvc, deps.ServerAdapter, deps.Connectivity, deps.Clock, deps.Logger.WithComponent("sync"))

	return &ClientServices{
		CacheService: cacheSvc,
		QueueService: queueSvc,
		SyncService:  syncSvc,
	}
}
