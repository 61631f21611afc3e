package store

import (
	"context"
	"database/sql"
	"fmt"

	"warehouse-ledger/internal/model"
)

// Stats returns the dashboard counters: distinct items, total quantity
// still checked out across active jobs, and the active job count.
func Stats(ctx context.Context, db *sql.DB) (*model.DashboardStats, error) {
	stats := &model.DashboardStats{}

	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&stats.TotalItems); err != nil {
		return nil, fmt.Errorf("counting items: %w", err)
	}
	if err := db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM job_items`).Scan(&stats.TotalCheckedOut); err != nil {
		return nil, fmt.Errorf("summing checked-out quantity: %w", err)
	}
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM active_jobs`).Scan(&stats.ActiveJobs); err != nil {
		return nil, fmt.Errorf("counting active jobs: %w", err)
	}

	return stats, nil
}
