package model

// DashboardStats holds the overview counters.
type DashboardStats struct {
	TotalItems      int `json:"total_items"`
	TotalCheckedOut int `json:"total_checked_out"`
	ActiveJobs      int `json:"active_jobs"`
}
