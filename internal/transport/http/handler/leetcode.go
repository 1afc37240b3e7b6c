package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/portfolio-backend/internal/application/stats"
)

// LeetCodeHandler exposes stat sync and lookup endpoints.
type LeetCodeHandler struct {
	svc             stats.Service
	defaultUsername string
}

func NewLeetCodeHandler(svc stats.Service, defaultUsername string) *LeetCodeHandler {
	return &LeetCodeHandler{svc: svc, defaultUsername: defaultUsername}
}

type syncRequest struct {
	Username string `json:"username"`
}

// Sync fetches fresh stats from LeetCode and persists them. The body may name
// a username; otherwise the configured portfolio profile is synced.
func (h *LeetCodeHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}
	username := req.Username
	if username == "" {
		username = h.defaultUsername
	}
	if username == "" {
		writeError(w, http.StatusBadRequest, "Username required")
		return
	}

	s, err := h.svc.Sync(r.Context(), username)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, StatsEnvelope{Data: s})
}

func (h *LeetCodeHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Get(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, StatsEnvelope{Data: s})
}
