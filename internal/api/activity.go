package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"warehouse-ledger/internal/model"
	"warehouse-ledger/internal/store"
)

// ActivityHandler handles the recent-activity feed and dashboard
// counters.
type ActivityHandler struct {
	DB *sql.DB
}

// Recent handles GET /api/activity.
func (h *ActivityHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			jsonError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	records, err := store.RecentActivity(r.Context(), h.DB, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []model.Transaction{}
	}
	jsonResponse(w, http.StatusOK, records)
}

// Dashboard handles GET /api/dashboard.
func (h *ActivityHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := store.Stats(r.Context(), h.DB)
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}
