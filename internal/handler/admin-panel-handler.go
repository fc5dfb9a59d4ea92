package handler

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// adminAuth guards admin endpoints with the configured token
func (h *Handler) adminAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.cfg.AdminToken == "" {
			h.sendErrorResponse(w, "admin API disabled", http.StatusForbidden)
			return
		}
		if r.Header.Get("X-Admin-Token") != h.cfg.AdminToken {
			h.sendErrorResponse(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// handleAdminUsers returns every stored profile
func (h *Handler) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.Load()
	if err != nil {
		h.logger.Error("failed to load user store", zap.Error(err))
		h.sendErrorResponse(w, "failed to load users", http.StatusInternalServerError)
		return
	}

	h.sendSuccessResponse(w, "users loaded", map[string]interface{}{
		"users": users,
		"count": len(users),
	})
}

// handleAdminJournal returns the most recent generation journal entries
func (h *Handler) handleAdminJournal(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	entries, err := h.journal.Recent(limit)
	if err != nil {
		h.logger.Error("failed to load journal", zap.Error(err))
		h.sendErrorResponse(w, "failed to load journal", http.StatusInternalServerError)
		return
	}

	h.sendSuccessResponse(w, "journal loaded", map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}
