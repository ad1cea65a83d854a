// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-visit-keeper/internal/adapter"
	"github.com/MKhiriev/go-visit-keeper/internal/config"
	controlapi "github.com/MKhiriev/go-visit-keeper/internal/handler/http"
	"github.com/MKhiriev/go-visit-keeper/internal/logger"
	"github.com/MKhiriev/go-visit-keeper/internal/network"
	"github.com/MKhiriev/go-visit-keeper/internal/offline"
	"github.com/MKhiriev/go-visit-keeper/internal/server"
	"github.com/MKhiriev/go-visit-keeper/internal/service"
	"github.com/MKhiriev/go-visit-keeper/internal/store"
	"github.com/MKhiriev/go-visit-keeper/internal/utils"
	"github.com/MKhiriev/go-visit-keeper/internal/workers"
	"github.com/MKhiriev/go-visit-keeper/models"
)

// App is the sync agent: it keeps the offline store in step with the remote
// API for as long as it runs.
type App struct {
	storages *store.ClientStorages
	monitor  *network.Monitor
	facade   *offline.Facade
	control  server.Server
	workers  *workers.Workers
	logger   *logger.Logger
}

var _ Client = (*App)(nil)

// NewApp opens the local store and wires every component from cfg. The
// local control API is started only when cfg.Server has an address.
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create server adapter: %w", err)
	}
	serverAdapter.SetToken(cfg.App.AuthToken)
	if userID, err := utils.ParseUserIDFromJWT(cfg.App.AuthToken); err == nil {
		log.Info().Str("func", "NewApp").Int64("user_id", userID).Msg("syncing on behalf of user")
	}

	clock := utils.SystemClock{}
	prober, err := network.NewHTTPProber(cfg.Network, clock)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create connectivity prober: %w", err)
	}
	monitor := network.NewMonitor(prober, cfg.Network.ProbeInterval, log.WithComponent("network"))

	services := service.NewClientServices(service.Deps{
		Store:         storages.KeyValueStore,
		ServerAdapter: serverAdapter,
		Connectivity:  monitor,
		Clock:         clock,
		Logger:        log,
	})

	facade := offline.NewFacade(services, monitor, log.WithComponent("offline"))
	syncJob := service.NewClientSyncJob(facade, cfg.Workers.SyncInterval)

	app := &App{
		storages: storages,
		monitor:  monitor,
		facade:   facade,
		logger:   log,
	}
	background := []workers.Worker{
		workers.Named("network-monitor", monitor.Run),
		workers.Named("sync-job", syncJob.Run),
		workers.Named("state-reporter", app.reportState),
	}

	if cfg.Server.HTTPAddress != "" {
		handler := controlapi.NewHandler(facade, buildInfo, log.WithComponent("control-api"))
		app.control, err = server.NewHTTPServer(handler.Init(), cfg.Server, log)
		if err != nil {
			_ = storages.Close()
			return nil, fmt.Errorf("create control API server: %w", err)
		}
		background = append(background, workers.Named("control-api", app.control.Run))
	}

	app.workers = workers.New(background...).WithLogger(log)

	return app, nil
}

// ControlAddr returns the control API listen address, or "" when the API
// is disabled.
func (a *App) ControlAddr() string {
	if a.control == nil {
		return ""
	}
	return a.control.Addr()
}

// Facade exposes the offline facade, for example to queue visits.
func (a *App) Facade() *offline.Facade {
	return a.facade
}

// Run starts the facade and the background workers, and blocks until ctx
// is done. The local store is closed on return.
func (a *App) Run(ctx context.Context) error {
	a.facade.Start(ctx)
	a.logger.Info().
		Str("func", "*App.Run").
		Interface("state", a.facade.State()).
		Msg("sync agent started")

	a.workers.Run(ctx)

	a.facade.Close()
	if err := a.storages.Close(); err != nil {
		return fmt.Errorf("close local storage: %w", err)
	}

	a.logger.Info().Str("func", "*App.Run").Msg("sync agent stopped")
	return nil
}

// reportState logs every observable state change until ctx is done.
func (a *App) reportState(ctx context.Context) {
	updates, unsubscribe := a.facade.Watch()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case s, ok := <-updates:
			if !ok {
				return
			}
			logState(a.logger, s)
		}
	}
}

func logState(log *logger.Logger, s models.OfflineState) {
	ev := log.Info().
		Str("func", "*App.reportState").
		Bool("is_online", s.IsOnline).
		Bool("is_initialized", s.IsInitialized).
		Int("pending_visits", s.PendingVisitsCount)
	if s.LastSyncTime != nil {
		ev = ev.Time("last_sync_time", *s.LastSyncTime)
	}
	ev.Msg("offline state changed")
}
