// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-visit-keeper/internal/config"
	"github.com/MKhiriev/go-visit-keeper/internal/logger"
)

// MemoryDSN opens a private in-memory sqlite database instead of a file.
// Nothing survives [ClientStorages.Close].
const MemoryDSN = ":memory:"

// ClientStorages groups the client-side storage used by the service layer.
type ClientStorages struct {
	// KeyValueStore holds the offline documents (cache, queue, sync marker).
	KeyValueStore KeyValueStore
}

// NewClientStorages opens the sqlite database at cfg.DB.DSN, creating the
// file when missing ([MemoryDSN] keeps it in memory), and runs pending
// migrations via [DB.Migrate].
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Str("dsn", cfg.DB.DSN).Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		KeyValueStore: NewSQLiteKeyValueStore(db, logger),
	}, nil
}

// Close releases the underlying database.
func (s *ClientStorages) Close() error {
	return s.KeyValueStore.Close()
}
