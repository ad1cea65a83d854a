// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-visit-keeper/internal/config"
	"github.com/MKhiriev/go-visit-keeper/internal/logger"
	"github.com/MKhiriev/go-visit-keeper/models"
)

// newTestAdapter creates an httpServerAdapter pointed at the test server.
func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 2 * time.Second}

	a, err := NewHTTPServerAdapter(adapterCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

// fakeVisitsAPI is a minimal in-memory version of the visits API.
type fakeVisitsAPI struct {
	mu     sync.Mutex
	visits []models.Visit
	auth   []string
}

func (f *fakeVisitsAPI) router() http.Handler {
	r := chi.NewRouter()
	r.Get("/api/visits", func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.auth = append(f.auth, req.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(f.visits)
	})
	r.Post("/api/visits", func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.auth = append(f.auth, req.Header.Get("Authorization"))

		var body models.CreateVisitRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.LandmarkID == "" {
			http.Error(w, "landmark_id is required", http.StatusBadRequest)
			return
		}
		for _, v := range f.visits {
			if v.LandmarkID == body.LandmarkID {
				http.Error(w, "already visited", http.StatusBadRequest)
				return
			}
		}

		visit := models.Visit{
			ID:         models.VisitID(strconv.Itoa(len(f.visits) + 1)),
			LandmarkID: body.LandmarkID,
			CreatedAt:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			Points:     10,
		}
		f.visits = append(f.visits, visit)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(visit)
	})
	return r
}

// ── NewHTTPServerAdapter ─────────────────────────────────────────────────────

func TestNewHTTPServerAdapter_InvalidAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.ClientAdapter{HTTPAddress: "   "}, logger.Nop())
	assert.Error(t, err)
}

// ── Token ────────────────────────────────────────────────────────────────────

func TestSetToken_TrimsAndAttaches(t *testing.T) {
	api := &fakeVisitsAPI{}
	srv := httptest.NewServer(api.router())
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("  tok-123 \n")
	assert.Equal(t, "tok-123", a.Token())

	_, err := a.ListVisits(context.Background())
	require.NoError(t, err)

	require.Len(t, api.auth, 1)
	assert.Equal(t, "Bearer tok-123", api.auth[0])
}

func TestNoToken_NoAuthorizationHeader(t *testing.T) {
	api := &fakeVisitsAPI{}
	srv := httptest.NewServer(api.router())
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.ListVisits(context.Background())
	require.NoError(t, err)

	require.Len(t, api.auth, 1)
	assert.Empty(t, api.auth[0])
}

// ── CreateVisit ──────────────────────────────────────────────────────────────

func TestCreateVisit_Created(t *testing.T) {
	api := &fakeVisitsAPI{}
	srv := httptest.NewServer(api.router())
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("tok")

	visit, err := a.CreateVisit(context.Background(), "landmark_42")
	require.NoError(t, err)
	assert.Equal(t, models.VisitID("1"), visit.ID)
	assert.Equal(t, "landmark_42", visit.LandmarkID)
	assert.Equal(t, 10, visit.Points)
}

func TestCreateVisit_DuplicateIsAlreadyRecorded(t *testing.T) {
	api := &fakeVisitsAPI{}
	srv := httptest.NewServer(api.router())
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.CreateVisit(context.Background(), "landmark_42")
	require.NoError(t, err)

	_, err = a.CreateVisit(context.Background(), "landmark_42")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVisitAlreadyRecorded)
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "already visited")
}

func TestCreateVisit_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantErr    error
		duplicated bool
	}{
		{name: "conflict", status: http.StatusConflict, wantErr: ErrConflict, duplicated: true},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{name: "internal", status: http.StatusInternalServerError, wantErr: ErrInternalServerError},
		{name: "bad gateway", status: http.StatusBadGateway, wantErr: ErrBadGateway},
		{name: "unavailable", status: http.StatusServiceUnavailable, wantErr: ErrServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL)
			_, err := a.CreateVisit(context.Background(), "landmark_1")

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.duplicated, errorIsAlreadyRecorded(err))
		})
	}
}

func TestCreateVisit_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	visit, err := a.CreateVisit(context.Background(), "landmark_7")
	require.NoError(t, err)
	assert.Equal(t, "landmark_7", visit.LandmarkID)
}

func TestCreateVisit_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	a := newTestAdapter(t, url)
	_, err := a.CreateVisit(context.Background(), "landmark_1")
	require.Error(t, err)
	assert.False(t, errorIsAlreadyRecorded(err))
}

// ── ListVisits ───────────────────────────────────────────────────────────────

func TestListVisits_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/visits", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":17,"landmark_id":"landmark_7","created_at":"2026-03-01T10:00:00Z","points":50}]`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	visits, err := a.ListVisits(context.Background())
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, models.VisitID("17"), visits[0].ID)
	assert.Equal(t, 50, visits[0].Points)
}

func TestListVisits_NullBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	visits, err := a.ListVisits(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, visits)
	assert.Empty(t, visits)
}

func TestListVisits_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.ListVisits(context.Background())
	assert.Error(t, err)
}

func TestListVisits_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("token expired"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.ListVisits(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func errorIsAlreadyRecorded(err error) bool {
	return errors.Is(err, ErrVisitAlreadyRecorded)
}
