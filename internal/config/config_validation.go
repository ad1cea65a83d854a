// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] is usable
// before it is used at startup. Client-specific rules live in
// [ClientConfig.validate] because defaults are applied there.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Network.ProbeURL == "" || cfg.Network.ProbeInterval <= 0 || cfg.Network.ProbeTimeout <= 0 {
		return ErrInvalidNetworkConfigs
	}
	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}
	return nil
}
