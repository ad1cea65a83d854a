// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// KeyValueStore is a durable string-keyed document store.
//
// Get returns [ErrKeyNotFound] when key is absent. Set overwrites any
// previous value. Remove deletes every named key in one operation; keys
// that do not exist are ignored.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, keys ...string) error
	Close() error
}
