// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-visit-keeper/internal/logger"
)

const (
	kvTable      = "kv_entries"
	kvColKey     = "key"
	kvColValue   = "value"
	kvColUpdated = "updated_at"
	kvUpsertTail = "ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at"
)

// sqliteKeyValueStore is the sqlite-backed implementation of [KeyValueStore].
// Each key is one row of the kv_entries table.
type sqliteKeyValueStore struct {
	db      *DB
	builder sq.StatementBuilderType
	logger  *logger.Logger
	now     func() time.Time
	closed  atomic.Bool
}

// NewSQLiteKeyValueStore constructs a [KeyValueStore] on top of an opened and
// migrated sqlite database.
func NewSQLiteKeyValueStore(db *DB, logger *logger.Logger) KeyValueStore {
	logger.Debug().Msg("creating sqlite key-value store")
	return &sqliteKeyValueStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *sqliteKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	if err := s.check(key); err != nil {
		return "", err
	}

	query, args, err := s.builder.
		Select(kvColValue).
		From(kvTable).
		Where(sq.Eq{kvColKey: key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		s.logger.Err(err).Str("func", "*sqliteKeyValueStore.Get").Str("key", key).Msg("error reading value")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, nil
}

func (s *sqliteKeyValueStore) Set(ctx context.Context, key, value string) error {
	if err := s.check(key); err != nil {
		return err
	}

	query, args, err := s.builder.
		Insert(kvTable).
		Columns(kvColKey, kvColValue, kvColUpdated).
		Values(key, value, s.now()).
		Suffix(kvUpsertTail).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "*sqliteKeyValueStore.Set").Str("key", key).Msg("error writing value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteKeyValueStore) Remove(ctx context.Context, keys ...string) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}
	if len(keys) == 0 {
		return nil
	}
	for _, key := range keys {
		if key == "" {
			return ErrEmptyKey
		}
	}

	query, args, err := s.builder.
		Delete(kvTable).
		Where(sq.Eq{kvColKey: keys}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "*sqliteKeyValueStore.Remove").Strs("keys", keys).Msg("error removing values")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteKeyValueStore) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.db.Close()
}

func (s *sqliteKeyValueStore) check(key string) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}
	if key == "" {
		return ErrEmptyKey
	}
	return nil
}
