package model

import "time"

// JobItem is one line on an active job. Quantity is the amount still
// outstanding (issued minus returned so far).
type JobItem struct {
	ItemID   int64  `json:"item_id"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
}

// ActiveJob is a checkout that has not been fully returned. A job with
// no outstanding items must not exist; the registry deletes it instead.
type ActiveJob struct {
	JobID      string    `json:"job_id"`
	PersonName string    `json:"person_name"`
	Items      []JobItem `json:"items"`
	Task       string    `json:"task,omitempty"`
	Date       time.Time `json:"date"`
}
