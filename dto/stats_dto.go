package dto

// EntityStats holds a total count plus a per-status breakdown
type EntityStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
}

// JobStats extends the breakdown with a computed success rate
type JobStats struct {
	Total       int64            `json:"total"`
	ByStatus    map[string]int64 `json:"byStatus"`
	SuccessRate float64          `json:"successRate"`
}

// PlatformStatsResponse is the admin dashboard aggregate
type PlatformStatsResponse struct {
	Users    int64       `json:"users"`
	Projects EntityStats `json:"projects"`
	Phases   EntityStats `json:"phases"`
	Jobs     JobStats    `json:"jobs"`
}
