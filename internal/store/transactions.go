package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"warehouse-ledger/internal/model"
)

// DefaultActivityLimit is the number of records RecentActivity returns
// when no limit is given.
const DefaultActivityLimit = 10

const transactionColumns = `id, job_id, person_name, item_id, item_name, quantity, action, task, date`

// AddTransaction appends one issue/return record to the log and
// returns its assigned ID. Dates are stored at second precision so
// that range queries and ordering compare correctly.
func AddTransaction(ctx context.Context, db *sql.DB, t model.Transaction) (int64, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO transactions (job_id, person_name, item_id, item_name, quantity, action, task, date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.JobID, t.PersonName, t.ItemID, t.ItemName, t.Quantity, t.Action, t.Task,
		t.Date.UTC().Truncate(time.Second),
	)
	if err != nil {
		return 0, fmt.Errorf("adding transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting transaction id: %w", err)
	}
	return id, nil
}

// RecentActivity returns the limit most recent records, newest first.
// Records from the same instant are ordered by insertion.
func RecentActivity(ctx context.Context, db *sql.DB, limit int) ([]model.Transaction, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}

	rows, err := db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions ORDER BY date DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing recent activity: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListByDateRange returns records with start <= date <= end, oldest first.
func ListByDateRange(ctx context.Context, db *sql.DB, start, end time.Time) ([]model.Transaction, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE date >= ? AND date <= ? ORDER BY date, id`,
		start.UTC().Truncate(time.Second), end.UTC().Truncate(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("listing transactions by date: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListByJob returns all records for a job, oldest first. History is
// retained after the job itself is removed.
func ListByJob(ctx context.Context, db *sql.DB, jobID string) ([]model.Transaction, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE job_id = ? ORDER BY date, id`, jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing transactions by job: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListByItem returns all records for an item, newest first.
func ListByItem(ctx context.Context, db *sql.DB, itemID int64) ([]model.Transaction, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE item_id = ? ORDER BY date DESC, id DESC`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing transactions by item: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// Summarize totals record quantities by action. NetChange is signed
// from the warehouse's perspective: issues subtract, returns add. The
// result does not depend on record order.
func Summarize(records []model.Transaction) model.Summary {
	var s model.Summary
	for _, t := range records {
		if t.Action == model.ActionIssue {
			s.TotalIssued += t.Quantity
			s.NetChange -= t.Quantity
		} else {
			s.TotalReturned += t.Quantity
			s.NetChange += t.Quantity
		}
	}
	return s
}

func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	var records []model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.JobID, &t.PersonName, &t.ItemID, &t.ItemName,
			&t.Quantity, &t.Action, &t.Task, &t.Date); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		records = append(records, t)
	}
	return records, rows.Err()
}
