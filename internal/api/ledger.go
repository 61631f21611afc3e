package api

import (
	"net/http"
	"time"

	"warehouse-ledger/internal/ledger"
)

// LedgerHandler handles issue, return and report endpoints.
type LedgerHandler struct {
	Ledger *ledger.Ledger
}

type issueRequest struct {
	JobID      string             `json:"job_id"`
	PersonName string             `json:"person_name"`
	Items      []ledger.IssueItem `json:"items"`
	Task       string             `json:"task"`
	Date       time.Time          `json:"date"`
}

type returnRequest struct {
	JobID string              `json:"job_id"`
	Items []ledger.ReturnItem `json:"items"`
}

// Issue handles POST /api/issue.
func (h *LedgerHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req issueRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Ledger.IssueItems(r.Context(), req.JobID, req.PersonName, req.Items, req.Task, req.Date); err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, map[string]string{"message": "items issued"})
}

// Return handles POST /api/return.
func (h *LedgerHandler) Return(w http.ResponseWriter, r *http.Request) {
	var req returnRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Ledger.ReturnItems(r.Context(), req.JobID, req.Items); err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "items returned"})
}

// Report handles GET /api/reports/{month}.
func (h *LedgerHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.Ledger.MonthlyReport(r.Context(), r.PathValue("month"))
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, report)
}
