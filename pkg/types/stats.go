package types

// StatisticsData is the police dashboard aggregate over missing reports.
// Counts are always present, never omitted, so a zero-activity system
// serializes as explicit zeros.
type StatisticsData struct {
	TotalReports int64 `json:"total_reports"`
	Found        int64 `json:"found"`
	StillMissing int64 `json:"still_missing"`
	Children     int64 `json:"children"`
	Male         int64 `json:"male"`
	Female       int64 `json:"female"`
	Other        int64 `json:"other"`
}

// NGODashboardStats covers a single volunteer's activity for the current
// UTC day.
type NGODashboardStats struct {
	PhotosReviewedToday int64 `json:"photosReviewedToday"`
	AIMatchesChecked    int64 `json:"aiMatchesChecked"`
	ReportsSent         int64 `json:"reportsSent"`
}
