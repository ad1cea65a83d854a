// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the control API router:
//
//	GET    /api/state           observable offline state
//	GET    /api/visits          cached visit list, shadows included
//	GET    /api/visits/pending  unsynced visits, oldest first
//	POST   /api/visits          queue a visit {"landmark_id": "..."}
//	POST   /api/sync            run a sync pass
//	DELETE /api/cache           clear every offline document
//	GET    /api/version         agent build version
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/api", func(r chi.Router) {
		r.Get("/state", h.getState)
		r.Post("/sync", h.syncNow)
		r.Delete("/cache", h.clearCache)
		r.Get("/version", h.getVersion)

		r.Route("/visits", func(r chi.Router) {
			r.Get("/", h.getCachedVisits)
			r.Post("/", h.queueVisit)
			r.Get("/pending", h.getPendingVisits)
		})
	})

	return router
}
