package model

import (
	"errors"
	"fmt"
)

// Validation and lookup errors. All of these are detected before any
// mutation and leave state untouched; callers can match them with
// errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateName   = errors.New("name already exists")
	ErrDuplicateJobID  = errors.New("job id already active")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrItemNotOnJob    = errors.New("item not on job")
	ErrStaleJobState   = errors.New("job state changed since read")
	ErrConflict        = errors.New("conflicting concurrent update")
)

// InsufficientStockError reports an issue request that exceeds an
// item's available stock. The whole operation is rejected; no item is
// touched.
type InsufficientStockError struct {
	ItemID    int64  `json:"item_id"`
	ItemName  string `json:"item_name"`
	Available int    `json:"available"`
	Requested int    `json:"requested"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %d, requested %d",
		e.ItemName, e.Available, e.Requested)
}

// PartialFailureError reports a multi-step operation that failed after
// some effects were already applied. Completed lists the sub-steps that
// ran; the operation must not be retried automatically, since that
// would double-apply them. Manual reconciliation is required.
type PartialFailureError struct {
	Op        string   // "issue" or "return"
	Completed []string // sub-steps that were applied before the failure
	Err       error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("partial %s failure after steps %v: %v", e.Op, e.Completed, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }
