package api

import (
	"database/sql"
	"net/http"

	"warehouse-ledger/internal/model"
	"warehouse-ledger/internal/store"
)

// JobsHandler handles active-job endpoints.
type JobsHandler struct {
	DB *sql.DB
}

// List handles GET /api/jobs.
func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := store.ListJobs(r.Context(), h.DB)
	if err != nil {
		writeError(w, err)
		return
	}
	if jobs == nil {
		jobs = []model.ActiveJob{}
	}
	jsonResponse(w, http.StatusOK, jobs)
}

// Get handles GET /api/jobs/{id}.
func (h *JobsHandler) Get(w http.ResponseWriter, r *http.Request) {
	job, err := store.GetJob(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, job)
}

// GetHistory handles GET /api/jobs/{id}/history.
func (h *JobsHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	history, err := store.ListByJob(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if history == nil {
		history = []model.Transaction{}
	}
	jsonResponse(w, http.StatusOK, history)
}
