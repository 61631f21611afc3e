package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"warehouse-ledger/internal/model"
)

// CreateJob registers an active checkout. The caller supplies the job
// ID; it must not collide with another active job. Item lines keep
// their request order via the position column.
func CreateJob(ctx context.Context, db *sql.DB, job model.ActiveJob) error {
	if job.JobID == "" {
		return fmt.Errorf("%w: job id required", model.ErrInvalidArgument)
	}
	if len(job.Items) == 0 {
		return fmt.Errorf("%w: job must have items", model.ErrInvalidArgument)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO active_jobs (job_id, person_name, task, date) VALUES (?, ?, ?, ?)`,
		job.JobID, job.PersonName, job.Task, job.Date.UTC().Truncate(time.Second),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("job %q: %w", job.JobID, model.ErrDuplicateJobID)
		}
		return fmt.Errorf("creating job: %w", err)
	}

	for i, item := range job.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO job_items (job_id, item_id, item_name, quantity, unit, position)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			job.JobID, item.ItemID, item.ItemName, item.Quantity, item.Unit, i,
		)
		if err != nil {
			return fmt.Errorf("creating job item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing job creation: %w", err)
	}
	return nil
}

// GetJob returns an active job with its item lines.
func GetJob(ctx context.Context, db *sql.DB, jobID string) (*model.ActiveJob, error) {
	job := &model.ActiveJob{}
	err := db.QueryRowContext(ctx,
		`SELECT job_id, person_name, task, date FROM active_jobs WHERE job_id = ?`, jobID,
	).Scan(&job.JobID, &job.PersonName, &job.Task, &job.Date)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("job %q: %w", jobID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting job: %w", err)
	}

	rows, err := db.QueryContext(ctx,
		`SELECT item_id, item_name, quantity, unit FROM job_items WHERE job_id = ? ORDER BY position`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("getting job items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.JobItem
		if err := rows.Scan(&item.ItemID, &item.ItemName, &item.Quantity, &item.Unit); err != nil {
			return nil, fmt.Errorf("scanning job item: %w", err)
		}
		job.Items = append(job.Items, item)
	}
	return job, rows.Err()
}

// ListJobs returns all active jobs with their item lines, newest first.
func ListJobs(ctx context.Context, db *sql.DB) ([]model.ActiveJob, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT job_id, person_name, task, date FROM active_jobs ORDER BY date DESC, job_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.ActiveJob
	index := make(map[string]int)
	for rows.Next() {
		var job model.ActiveJob
		if err := rows.Scan(&job.JobID, &job.PersonName, &job.Task, &job.Date); err != nil {
			return nil, fmt.Errorf("scanning job: %w", err)
		}
		index[job.JobID] = len(jobs)
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, nil
	}

	itemRows, err := db.QueryContext(ctx,
		`SELECT job_id, item_id, item_name, quantity, unit FROM job_items ORDER BY job_id, position`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing job items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var jobID string
		var item model.JobItem
		if err := itemRows.Scan(&jobID, &item.ItemID, &item.ItemName, &item.Quantity, &item.Unit); err != nil {
			return nil, fmt.Errorf("scanning job item: %w", err)
		}
		if i, ok := index[jobID]; ok {
			jobs[i].Items = append(jobs[i].Items, item)
		}
	}
	return jobs, itemRows.Err()
}

// ReduceOrRemove decrements outstanding quantities for returned items.
// Lines that reach exactly zero are dropped; once no lines remain the
// job itself is deleted. Runs in a single transaction so the job is
// never observable in a half-reduced state.
func ReduceOrRemove(ctx context.Context, db *sql.DB, jobID string, returned map[int64]int) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM active_jobs WHERE job_id = ?`, jobID).Scan(&one)
	if err == sql.ErrNoRows {
		return fmt.Errorf("job %q: %w", jobID, model.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking job: %w", err)
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT item_id, quantity FROM job_items WHERE job_id = ?`, jobID,
	)
	if err != nil {
		return fmt.Errorf("reading job items: %w", err)
	}

	current := make(map[int64]int)
	for rows.Next() {
		var itemID int64
		var qty int
		if err := rows.Scan(&itemID, &qty); err != nil {
			rows.Close()
			return fmt.Errorf("scanning job item: %w", err)
		}
		current[itemID] = qty
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	// Validate every entry before touching any line.
	for itemID, qty := range returned {
		remaining, ok := current[itemID]
		if !ok {
			return fmt.Errorf("item %d on job %q: %w", itemID, jobID, model.ErrItemNotOnJob)
		}
		if qty < 0 || qty > remaining {
			return fmt.Errorf("%w: cannot return %d of %d remaining for item %d",
				model.ErrInvalidArgument, qty, remaining, itemID)
		}
	}

	lines := len(current)
	for itemID, qty := range returned {
		if qty == 0 {
			continue
		}
		newQty := current[itemID] - qty
		if newQty == 0 {
			_, err = tx.ExecContext(ctx,
				`DELETE FROM job_items WHERE job_id = ? AND item_id = ?`, jobID, itemID,
			)
			lines--
		} else {
			_, err = tx.ExecContext(ctx,
				`UPDATE job_items SET quantity = ? WHERE job_id = ? AND item_id = ?`,
				newQty, jobID, itemID,
			)
		}
		if err != nil {
			return fmt.Errorf("updating job item: %w", err)
		}
	}

	if lines == 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM active_jobs WHERE job_id = ?`, jobID); err != nil {
			return fmt.Errorf("removing job: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing job update: %w", err)
	}
	return nil
}
