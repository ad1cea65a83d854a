// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"dario.cat/mergo"
)

// Defaults applied by [GetClientConfig] to fields left empty by every source.
const (
	DefaultDSN            = "offline.db"
	DefaultRequestTimeout = 15 * time.Second
	DefaultProbeInterval  = 10 * time.Second
	DefaultProbeTimeout   = 3 * time.Second
	DefaultSyncInterval   = 5 * time.Minute
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// AuthToken is the bearer token handed to the API adapter.
	AuthToken string
	// LogFile is the log destination; empty means next to the executable.
	LogFile string
	// Version is reported in startup logs.
	Version string
}

// ClientAdapter holds network settings used by the API adapter.
type ClientAdapter struct {
	// HTTPAddress is the base address of the remote API.
	HTTPAddress string
	// RequestTimeout is the timeout for outbound API requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database settings.
type ClientDB struct {
	// DSN is the sqlite file path, or ":memory:" for the in-memory store.
	DSN string
}

// ClientStorage groups local storage settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientNetwork holds connectivity monitor settings.
type ClientNetwork struct {
	ProbeURL      string
	ProbeInterval time.Duration
	ProbeTimeout  time.Duration
}

// ClientWorkers contains background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the background sync job runs.
	SyncInterval time.Duration
}

// ClientServer holds the local control API settings.
type ClientServer struct {
	// HTTPAddress is the listen address; empty disables the API.
	HTTPAddress string
}

// ClientConfig is the configuration of the sync agent, assembled from
// [StructuredConfig] with defaults applied.
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Network ClientNetwork
	Workers ClientWorkers
	Server  ClientServer
}

// GetClientConfig builds and validates the client config from the merged
// structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewClientConfig(cfg)
}

// NewClientConfig maps cfg to a [ClientConfig], fills unset fields with
// defaults and validates the result.
func NewClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		App: ClientApp{
			AuthToken: cfg.App.AuthToken,
			LogFile:   cfg.App.LogFile,
			Version:   cfg.App.Version,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Network: ClientNetwork{
			ProbeURL:      cfg.Network.ProbeURL,
			ProbeInterval: cfg.Network.ProbeInterval,
			ProbeTimeout:  cfg.Network.ProbeTimeout,
		},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
		Server:  ClientServer{HTTPAddress: cfg.Server.HTTPAddress},
	}

	if err := mergo.Merge(clientCfg, defaultClientConfig(cfg)); err != nil {
		return nil, fmt.Errorf("error applying config defaults: %w", err)
	}

	return clientCfg, clientCfg.validate()
}

func defaultClientConfig(cfg *StructuredConfig) ClientConfig {
	return ClientConfig{
		Adapter: ClientAdapter{RequestTimeout: DefaultRequestTimeout},
		Storage: ClientStorage{DB: ClientDB{DSN: DefaultDSN}},
		Network: ClientNetwork{
			ProbeURL:      cfg.Adapter.HTTPAddress,
			ProbeInterval: DefaultProbeInterval,
			ProbeTimeout:  DefaultProbeTimeout,
		},
		Workers: ClientWorkers{SyncInterval: DefaultSyncInterval},
	}
}
