// Package ledger coordinates the multi-record issue and return
// operations across the inventory, transaction log and active-job
// tables, and produces monthly reports.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"warehouse-ledger/internal/model"
	"warehouse-ledger/internal/store"
)

// Ledger drives issue and return operations. Each storage call is
// individually atomic, but an issue or return spans several of them,
// so mutating operations are serialized through mu to keep the
// read-check-then-write sequences from interleaving.
type Ledger struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a Ledger on an open database handle.
func New(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

// IssueItem is one requested line of an issue operation.
type IssueItem struct {
	ItemID   int64  `json:"item_id"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

// ReturnItem is one returned line of a return operation. OriginalQty
// must match the job's current remaining quantity for the item; a
// mismatch means the job changed since the caller last read it.
type ReturnItem struct {
	ItemID      int64 `json:"item_id"`
	ReturnedQty int   `json:"returned_qty"`
	OriginalQty int   `json:"original_qty"`
}

// IssueItems checks out items to a new job. All validation happens
// before any write: if a single item fails its stock check, no stock
// changes, nothing is logged and no job is created. On success the
// effects are applied in a fixed order (stock decrements, then log
// appends, then job creation); a storage failure mid-sequence is
// surfaced as a PartialFailureError listing the applied steps, since
// the steps are separate storage calls with no shared transaction.
func (l *Ledger) IssueItems(ctx context.Context, jobID, personName string, items []IssueItem, task string, date time.Time) error {
	if jobID == "" {
		return fmt.Errorf("%w: job id required", model.ErrInvalidArgument)
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: at least one item required", model.ErrInvalidArgument)
	}
	seen := make(map[int64]bool, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive for item %d", model.ErrInvalidArgument, item.ItemID)
		}
		if seen[item.ItemID] {
			return fmt.Errorf("%w: item %d listed twice", model.ErrInvalidArgument, item.ItemID)
		}
		seen[item.ItemID] = true
	}
	if date.IsZero() {
		date = time.Now()
	}
	date = date.UTC().Truncate(time.Second)

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := store.GetJob(ctx, l.db, jobID); err == nil {
		return fmt.Errorf("job %q: %w", jobID, model.ErrDuplicateJobID)
	} else if !errors.Is(err, model.ErrNotFound) {
		return err
	}

	// Check stock for every requested item before touching anything.
	type checkedItem struct {
		item *model.Item
		qty  int
	}
	checked := make([]checkedItem, 0, len(items))
	for _, req := range items {
		dbItem, err := store.GetItem(ctx, l.db, req.ItemID)
		if err != nil {
			return err
		}
		if dbItem.CurrentStock < req.Quantity {
			return &model.InsufficientStockError{
				ItemID:    dbItem.ID,
				ItemName:  dbItem.Name,
				Available: dbItem.CurrentStock,
				Requested: req.Quantity,
			}
		}
		checked = append(checked, checkedItem{item: dbItem, qty: req.Quantity})
	}

	var completed []string
	for _, c := range checked {
		if err := store.SetStock(ctx, l.db, c.item.ID, c.item.CurrentStock-c.qty); err != nil {
			return applyFailure("issue", completed, err)
		}
		completed = append(completed, fmt.Sprintf("stock item %d", c.item.ID))
	}

	for _, c := range checked {
		_, err := store.AddTransaction(ctx, l.db, model.Transaction{
			JobID:      jobID,
			PersonName: personName,
			ItemID:     c.item.ID,
			ItemName:   c.item.Name,
			Quantity:   c.qty,
			Action:     model.ActionIssue,
			Task:       task,
			Date:       date,
		})
		if err != nil {
			return applyFailure("issue", completed, err)
		}
		completed = append(completed, fmt.Sprintf("log item %d", c.item.ID))
	}

	jobItems := make([]model.JobItem, 0, len(checked))
	for _, c := range checked {
		jobItems = append(jobItems, model.JobItem{
			ItemID:   c.item.ID,
			ItemName: c.item.Name,
			Quantity: c.qty,
			Unit:     c.item.Unit,
		})
	}
	err := store.CreateJob(ctx, l.db, model.ActiveJob{
		JobID:      jobID,
		PersonName: personName,
		Items:      jobItems,
		Task:       task,
		Date:       date,
	})
	if err != nil {
		return applyFailure("issue", completed, err)
	}
	return nil
}

// ReturnItems credits previously issued quantities back to stock.
// Every line is validated against the job's current state before any
// write; a zero returnedQty is a permitted no-op for that line. The
// apply order mirrors IssueItems: stock credits, then log appends,
// then the registry update that reduces or removes the job.
func (l *Ledger) ReturnItems(ctx context.Context, jobID string, returns []ReturnItem) error {
	if len(returns) == 0 {
		return fmt.Errorf("%w: at least one return line required", model.ErrInvalidArgument)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	job, err := store.GetJob(ctx, l.db, jobID)
	if err != nil {
		return err
	}

	lines := make(map[int64]model.JobItem, len(job.Items))
	for _, item := range job.Items {
		lines[item.ItemID] = item
	}

	seen := make(map[int64]bool, len(returns))
	for _, r := range returns {
		if seen[r.ItemID] {
			return fmt.Errorf("%w: item %d listed twice", model.ErrInvalidArgument, r.ItemID)
		}
		seen[r.ItemID] = true

		line, ok := lines[r.ItemID]
		if !ok {
			return fmt.Errorf("item %d on job %q: %w", r.ItemID, jobID, model.ErrItemNotOnJob)
		}
		if r.ReturnedQty < 0 || r.ReturnedQty > r.OriginalQty {
			return fmt.Errorf("%w: cannot return %d of %d issued for %s",
				model.ErrInvalidArgument, r.ReturnedQty, r.OriginalQty, line.ItemName)
		}
		if r.OriginalQty != line.Quantity {
			return fmt.Errorf("item %s on job %q has %d remaining, caller saw %d: %w",
				line.ItemName, jobID, line.Quantity, r.OriginalQty, model.ErrStaleJobState)
		}
	}

	now := time.Now().UTC().Truncate(time.Second)

	var completed []string
	for _, r := range returns {
		if r.ReturnedQty == 0 {
			continue
		}
		dbItem, err := store.GetItem(ctx, l.db, r.ItemID)
		if err != nil {
			return applyFailure("return", completed, err)
		}
		if err := store.SetStock(ctx, l.db, r.ItemID, dbItem.CurrentStock+r.ReturnedQty); err != nil {
			return applyFailure("return", completed, err)
		}
		completed = append(completed, fmt.Sprintf("stock item %d", r.ItemID))
	}

	for _, r := range returns {
		if r.ReturnedQty == 0 {
			continue
		}
		_, err := store.AddTransaction(ctx, l.db, model.Transaction{
			JobID:      jobID,
			PersonName: job.PersonName,
			ItemID:     r.ItemID,
			ItemName:   lines[r.ItemID].ItemName,
			Quantity:   r.ReturnedQty,
			Action:     model.ActionReturn,
			Task:       job.Task,
			Date:       now,
		})
		if err != nil {
			return applyFailure("return", completed, err)
		}
		completed = append(completed, fmt.Sprintf("log item %d", r.ItemID))
	}

	returned := make(map[int64]int, len(returns))
	for _, r := range returns {
		if r.ReturnedQty > 0 {
			returned[r.ItemID] = r.ReturnedQty
		}
	}
	if len(returned) > 0 {
		if err := store.ReduceOrRemove(ctx, l.db, jobID, returned); err != nil {
			return applyFailure("return", completed, err)
		}
	}
	return nil
}

// MonthlyReport summarizes all transactions in a calendar month.
// Month is "YYYY-MM"; the range runs from the first instant of the
// month through the last instant of its final day, both inclusive.
func (l *Ledger) MonthlyReport(ctx context.Context, month string) (*model.MonthlyReport, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("%w: month must be formatted YYYY-MM", model.ErrInvalidArgument)
	}

	end := start.AddDate(0, 1, 0).Add(-time.Second)
	records, err := store.ListByDateRange(ctx, l.db, start, end)
	if err != nil {
		return nil, err
	}

	return &model.MonthlyReport{
		Month:        month,
		Summary:      store.Summarize(records),
		Transactions: records,
	}, nil
}

// applyFailure wraps a storage error from the apply phase. If nothing
// was applied yet the rejection is clean and the error passes through;
// otherwise the caller gets a PartialFailureError naming the applied
// steps so an operator can reconcile.
func applyFailure(op string, completed []string, err error) error {
	if len(completed) == 0 {
		return err
	}
	return &model.PartialFailureError{Op: op, Completed: completed, Err: err}
}
