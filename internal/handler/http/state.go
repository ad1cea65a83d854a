// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

func (h *Handler) getState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.facade.State())
}

// syncNow runs a pass synchronously; a skipped pass is still a 200.
func (h *Handler) syncNow(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.facade.SyncNow(r.Context()))
}

func (h *Handler) clearCache(w http.ResponseWriter, r *http.Request) {
	if !h.facade.ClearCache(r.Context()) {
		writeError(w, r, http.StatusInternalServerError, ErrNotCleared)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
