package domain

import "time"

// DashboardStats are the headline counters of the overview.
type DashboardStats struct {
	TotalDocuments      int
	PendingApprovals    int
	RecentUploads       int
	ComplianceRate      float64
	UnreadNotifications int
}

// PendingAction is work waiting on the current user.
type PendingAction struct {
	Type       string
	DocumentID string
	Title      string
	Priority   Priority
	CreatedAt  time.Time
}

// Alert is a dashboard banner. Alerts have no server id; the client
// assigns one from the type so they can be dismissed.
type Alert struct {
	ID       string
	Type     string
	Message  string
	Severity string
	Count    int
}

// Overview is the dashboard landing data.
type Overview struct {
	Stats           DashboardStats
	RecentDocuments []Document
	PendingActions  []PendingAction
	Alerts          []Alert
}

// TrendPoint is one day of document volume.
type TrendPoint struct {
	Date  string
	Count int
}

// ApprovalMetrics summarise approval outcomes.
type ApprovalMetrics struct {
	Total         int
	Approved      int
	Rejected      int
	Pending       int
	ApprovalRate  float64
	RejectionRate float64
}

// DepartmentStat summarises one department.
type DepartmentStat struct {
	Total        int
	Approved     int
	Pending      int
	ApprovalRate float64
}

// Analytics is the analytics payload for one period.
type Analytics struct {
	Period      string
	Start       string
	End         string
	Trends      []TrendPoint
	Approvals   ApprovalMetrics
	Departments map[string]DepartmentStat
}

// AnalyticsQuery selects an analytics period.
type AnalyticsQuery struct {
	Metric      string `url:"-"`
	Period      string `url:"period,omitempty"`
	Granularity string `url:"granularity,omitempty"`
}

// DefaultDateRange is the dashboard period before the user picks one.
const DefaultDateRange = "30d"
