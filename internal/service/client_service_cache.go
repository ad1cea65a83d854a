// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-visit-keeper/internal/store"
	"github.com/MKhiriev/go-visit-keeper/models"
)

type clientCacheService struct {
	docs *documents
}

func newClientCacheService(docs *documents) *clientCacheService {
	return &clientCacheService{docs: docs}
}

// NewClientCacheService builds a [ClientCacheService] on kv.
func NewClientCacheService(kv store.KeyValueStore) ClientCacheService {
	return newClientCacheService(newDocuments(kv))
}

// CacheLandmarks implements [ClientCacheService]. Landmarks of all countries
// share one document, a map keyed by country id, so the write is a
// read-modify-write of that map. A corrupt map is replaced.
func (s *clientCacheService) CacheLandmarks(ctx context.Context, countryID string, landmarks any) error {
	if countryID == "" {
		return ErrEmptyCountryID
	}

	payload, err := json.Marshal(landmarks)
	if err != nil {
		return fmt.Errorf("encode landmarks of %s: %w", countryID, err)
	}

	s.docs.mu.Lock()
	defer s.docs.mu.Unlock()

	byCountry := make(map[string]json.RawMessage)
	if _, err = s.docs.load(ctx, store.KeyLandmarks, &byCountry); err != nil {
		if isStorageErr(err) {
			return err
		}
		byCountry = make(map[string]json.RawMessage)
	}
	if byCountry == nil {
		byCountry = make(map[string]json.RawMessage)
	}
	byCountry[countryID] = payload

	return s.docs.save(ctx, store.KeyLandmarks, byCountry)
}

// GetCachedLandmarks implements [ClientCacheService].
func (s *clientCacheService) GetCachedLandmarks(ctx context.Context, countryID string) (json.RawMessage, error) {
	var byCountry map[string]json.RawMessage
	found, err := s.docs.load(ctx, store.KeyLandmarks, &byCountry)
	if err != nil {
		return nil, missOr(err)
	}

	landmarks, ok := byCountry[countryID]
	if !found || !ok {
		return nil, ErrCacheMiss
	}
	return landmarks, nil
}

// CacheVisits implements [ClientCacheService].
func (s *clientCacheService) CacheVisits(ctx context.Context, visits []models.CachedVisit) error {
	if visits == nil {
		visits = []models.CachedVisit{}
	}

	s.docs.mu.Lock()
	defer s.docs.mu.Unlock()

	return s.docs.save(ctx, store.KeyVisits, visits)
}

// GetCachedVisits implements [ClientCacheService].
func (s *clientCacheService) GetCachedVisits(ctx context.Context) ([]models.CachedVisit, error) {
	var visits []models.CachedVisit
	found, err := s.docs.load(ctx, store.KeyVisits, &visits)
	if err != nil {
		return nil, missOr(err)
	}
	if !found {
		return nil, ErrCacheMiss
	}
	return visits, nil
}

// CacheCountries implements [ClientCacheService].
func (s *clientCacheService) CacheCountries(ctx context.Context, countries any) error {
	return s.cacheRaw(ctx, store.KeyCountries, countries)
}

// GetCachedCountries implements [ClientCacheService].
func (s *clientCacheService) GetCachedCountries(ctx context.Context) (json.RawMessage, error) {
	return s.getRaw(ctx, store.KeyCountries)
}

// CacheProgress implements [ClientCacheService].
func (s *clientCacheService) CacheProgress(ctx context.Context, progress any) error {
	return s.cacheRaw(ctx, store.KeyProgress, progress)
}

// GetCachedProgress implements [ClientCacheService].
func (s *clientCacheService) GetCachedProgress(ctx context.Context) (json.RawMessage, error) {
	return s.getRaw(ctx, store.KeyProgress)
}

// AppendShadowVisit implements [ClientCacheService].
func (s *clientCacheService) AppendShadowVisit(ctx context.Context, visit models.PendingVisit) error {
	s.docs.mu.Lock()
	defer s.docs.mu.Unlock()

	return s.appendShadowLocked(ctx, visit)
}

// ReplaceVisits implements [ClientCacheService].
func (s *clientCacheService) ReplaceVisits(ctx context.Context, visits []models.Visit) error {
	s.docs.mu.Lock()
	defer s.docs.mu.Unlock()

	return s.replaceVisitsLocked(ctx, visits)
}

// replaceVisitsSince replaces the visit list unless the store was cleared
// after generation. It reports whether the list was written.
func (s *clientCacheService) replaceVisitsSince(ctx context.Context, visits []models.Visit, generation uint64) (bool, error) {
	s.docs.mu.Lock()
	defer s.docs.mu.Unlock()

	if s.docs.generation != generation {
		return false, nil
	}
	return true, s.replaceVisitsLocked(ctx, visits)
}

func (s *clientCacheService) replaceVisitsLocked(ctx context.Context, visits []models.Visit) error {
	queue, err := s.docs.loadQueue(ctx)
	if err != nil {
		return err
	}
	pending := unsynced(queue)

	cached := make([]models.CachedVisit, 0, len(visits)+len(pending))
	for _, v := range visits {
		cached = append(cached, models.ConfirmedVisit(v))
	}
	for _, p := range pending {
		cached = append(cached, models.ShadowVisit(p))
	}

	return s.docs.save(ctx, store.KeyVisits, cached)
}

// appendShadowLocked appends a shadow of visit to the cached visit list.
// A missing or corrupt list starts empty. Callers hold docs.mu.
func (s *clientCacheService) appendShadowLocked(ctx context.Context, visit models.PendingVisit) error {
	var cached []models.CachedVisit
	if _, err := s.docs.load(ctx, store.KeyVisits, &cached); err != nil {
		if isStorageErr(err) {
			return err
		}
		cached = nil
	}

	cached = append(cached, models.ShadowVisit(visit))
	return s.docs.save(ctx, store.KeyVisits, cached)
}

func (s *clientCacheService) cacheRaw(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	s.docs.mu.Lock()
	defer s.docs.mu.Unlock()

	return s.docs.save(ctx, key, json.RawMessage(payload))
}

func (s *clientCacheService) getRaw(ctx context.Context, key string) (json.RawMessage, error) {
	var raw json.RawMessage
	found, err := s.docs.load(ctx, key, &raw)
	if err != nil {
		return nil, missOr(err)
	}
	if !found {
		return nil, ErrCacheMiss
	}
	return raw, nil
}

// missOr keeps storage failures and reports decode failures as a miss.
func missOr(err error) error {
	if isStorageErr(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrCacheMiss, err)
}
