package api

import (
	"database/sql"
	"net/http"

	"warehouse-ledger/internal/ledger"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB) http.Handler {
	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{DB: db}
	jobsHandler := &JobsHandler{DB: db}
	activityHandler := &ActivityHandler{DB: db}
	ledgerHandler := &LedgerHandler{Ledger: ledger.New(db)}

	// Items.
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("POST /api/items", itemsHandler.Create)
	mux.HandleFunc("GET /api/items/{id}", itemsHandler.Get)
	mux.HandleFunc("PUT /api/items/{id}/stock", itemsHandler.SetStock)
	mux.HandleFunc("GET /api/items/{id}/history", itemsHandler.GetHistory)

	// Active jobs.
	mux.HandleFunc("GET /api/jobs", jobsHandler.List)
	mux.HandleFunc("GET /api/jobs/{id}", jobsHandler.Get)
	mux.HandleFunc("GET /api/jobs/{id}/history", jobsHandler.GetHistory)

	// Issue, return, reports.
	mux.HandleFunc("POST /api/issue", ledgerHandler.Issue)
	mux.HandleFunc("POST /api/return", ledgerHandler.Return)
	mux.HandleFunc("GET /api/reports/{month}", ledgerHandler.Report)

	// Activity feed and dashboard.
	mux.HandleFunc("GET /api/activity", activityHandler.Recent)
	mux.HandleFunc("GET /api/dashboard", activityHandler.Dashboard)

	return mux
}
