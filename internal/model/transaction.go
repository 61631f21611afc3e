package model

import "time"

// Transaction actions.
const (
	ActionIssue  = "issue"
	ActionReturn = "return"
)

// Transaction is one issue or return event. Records are append-only
// and never updated or deleted, even after the referenced job or item
// changes.
type Transaction struct {
	ID         int64     `json:"id"`
	JobID      string    `json:"job_id"`
	PersonName string    `json:"person_name"`
	ItemID     int64     `json:"item_id"`
	ItemName   string    `json:"item_name"`
	Quantity   int       `json:"quantity"`
	Action     string    `json:"action"`
	Task       string    `json:"task,omitempty"`
	Date       time.Time `json:"date"`
}

// Summary aggregates transaction quantities. NetChange is signed from
// the warehouse's perspective: returns add stock, issues remove it.
type Summary struct {
	TotalIssued   int `json:"total_issued"`
	TotalReturned int `json:"total_returned"`
	NetChange     int `json:"net_change"`
}

// MonthlyReport holds a month's transactions and their totals.
type MonthlyReport struct {
	Month        string        `json:"month"`
	Summary      Summary       `json:"summary"`
	Transactions []Transaction `json:"transactions"`
}
