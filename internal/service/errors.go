// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrCacheMiss is returned by cache getters when the key is absent or
	// the stored document cannot be decoded.
	ErrCacheMiss = errors.New("cache miss")

	// ErrEmptyLandmarkID is returned by Enqueue for an empty landmark id.
	ErrEmptyLandmarkID = errors.New("empty landmark id")

	// ErrEmptyCountryID is returned by the landmark cache for an empty
	// country id.
	ErrEmptyCountryID = errors.New("empty country id")

	// ErrStorage wraps failures of the underlying key-value store.
	ErrStorage = errors.New("storage failure")
)

func isStorageErr(err error) bool {
	return errors.Is(err, ErrStorage)
}
