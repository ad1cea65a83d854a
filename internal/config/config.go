// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container. It is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the bearer token and
	// the log destination.
	App App `envPrefix:"APP_"`

	// Storage holds the durable key-value store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the remote API endpoint settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Network holds connectivity probing settings.
	Network Network `envPrefix:"NETWORK_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Server holds the local control API settings.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// AuthToken is the bearer token attached to API calls. The token store
	// is owned by the host application; the agent binary reads it here.
	// Env: APP_AUTH_TOKEN
	AuthToken string `env:"AUTH_TOKEN"`

	// Version is the semantic version string of the running agent.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogFile is the path of the agent log file.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Storage groups the configuration for the local durable store.
type Storage struct {
	// DB holds the sqlite database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local sqlite database.
type DB struct {
	// DSN is the sqlite file path (e.g. "/var/lib/visits/offline.db").
	// ":memory:" selects the in-memory store.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Adapter holds settings of the remote visits API.
type Adapter struct {
	// HTTPAddress is the base URL of the API, with or without scheme
	// (e.g. "https://api.example.com" or "localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound API request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Network holds connectivity probing settings.
type Network struct {
	// ProbeURL is requested to decide whether the internet is reachable.
	// Defaults to the adapter address.
	// Env: NETWORK_PROBE_URL
	ProbeURL string `env:"PROBE_URL"`

	// ProbeInterval is the polling period of the network monitor.
	// Env: NETWORK_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`

	// ProbeTimeout bounds a single probe request.
	// Env: NETWORK_PROBE_TIMEOUT
	ProbeTimeout time.Duration `env:"PROBE_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is the period of the background sync job.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Server holds settings of the local control API of the agent.
type Server struct {
	// HTTPAddress is the listen address of the control API
	// (e.g. "127.0.0.1:8099"). Empty disables the API.
	// Env: SERVER_HTTP_ADDRESS
	HTTPAddress string `env:"HTTP_ADDRESS"`
}

// GetStructuredConfig loads and merges the configuration from all available
// sources in the following priority order (last source wins for non-zero
// fields):
//  1. Environment variables
//  2. Command-line flags (os.Args)
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
