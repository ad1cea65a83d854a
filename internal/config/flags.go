// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"fmt"
	"io"
	"time"
)

// ParseFlags parses configuration flags from args (normally os.Args[1:]).
// A dedicated FlagSet is used so parsing can be repeated.
//
// Flags:
//
//	-a remote API address
//	-d sqlite DSN of the local store
//	-c/-config json file path with configs
//	-token bearer token
//	-log-file log file path
//	-request-timeout API request timeout (e.g. "15s")
//	-probe-url connectivity probe URL
//	-probe-interval connectivity polling period (e.g. "10s")
//	-probe-timeout single probe timeout (e.g. "3s")
//	-sync-interval background sync period (e.g. "5m")
//	-control-address listen address of the local control API
func ParseFlags(args []string) (*StructuredConfig, error) {
	var (
		address        string
		dsn            string
		jsonConfigPath string
		authToken      string
		logFile        string
		requestTimeout time.Duration
		probeURL       string
		probeInterval  time.Duration
		probeTimeout   time.Duration
		syncInterval   time.Duration
		controlAddress string
	)

	fs := flag.NewFlagSet("visit-keeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&address, "a", "", "Remote API address")
	fs.StringVar(&dsn, "d", "", "Local store DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&authToken, "token", "", "Bearer token")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s)")
	fs.StringVar(&probeURL, "probe-url", "", "Connectivity probe URL")
	fs.DurationVar(&probeInterval, "probe-interval", 0, "Connectivity polling period (e.g., 10s)")
	fs.DurationVar(&probeTimeout, "probe-timeout", 0, "Probe timeout (e.g., 3s)")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Background sync period (e.g., 5m)")
	fs.StringVar(&controlAddress, "control-address", "", "Local control API address")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			AuthToken: authToken,
			LogFile:   logFile,
		},
		Storage: Storage{
			DB: DB{DSN: dsn},
		},
		Adapter: Adapter{
			HTTPAddress:    address,
			RequestTimeout: requestTimeout,
		},
		Network: Network{
			ProbeURL:      probeURL,
			ProbeInterval: probeInterval,
			ProbeTimeout:  probeTimeout,
		},
		Workers:      Workers{SyncInterval: syncInterval},
		Server:       Server{HTTPAddress: controlAddress},
		JSONFilePath: jsonConfigPath,
	}, nil
}
