package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

func overview() *domain.Overview {
	return &domain.Overview{
		Stats: domain.DashboardStats{TotalDocuments: 12, PendingApprovals: 3},
		Alerts: []domain.Alert{
			{Type: "overdue_documents", Message: "2 overdue", Severity: "warning"},
			{Type: "compliance", Message: "Low compliance", Severity: "error"},
		},
	}
}

func TestDashboard_OverviewAssignsAlertIDs(t *testing.T) {
	d := NewDashboard()
	require.True(t, d.CompleteOverview(d.Begin(domain.ConcernDashboardOverview), overview()))

	snap := d.Snapshot()
	require.NotNil(t, snap.Overview)
	assert.Equal(t, 12, snap.Overview.Stats.TotalDocuments)
	assert.Equal(t, "overdue_documents", snap.Overview.Alerts[0].ID)
}

func TestDashboard_DismissedAlertStaysHidden(t *testing.T) {
	d := NewDashboard()
	d.CompleteOverview(d.Begin(domain.ConcernDashboardOverview), overview())

	assert.True(t, d.DismissAlert("compliance"))
	assert.Len(t, d.Snapshot().Overview.Alerts, 1)

	d.CompleteOverview(d.Begin(domain.ConcernDashboardOverview), overview())
	alerts := d.Snapshot().Overview.Alerts
	require.Len(t, alerts, 1)
	assert.Equal(t, "overdue_documents", alerts[0].ID)

	assert.False(t, d.DismissAlert("unknown"))
}

func TestDashboard_Analytics(t *testing.T) {
	d := NewDashboard()
	assert.Equal(t, domain.DefaultDateRange, d.DateRange())

	d.SetDateRange("7d")
	d.CompleteAnalytics(d.Begin(domain.ConcernDashboardAnalytics), "overview",
		&domain.Analytics{Period: "7d"})

	snap := d.Snapshot()
	assert.Equal(t, "7d", snap.DateRange)
	assert.Equal(t, "7d", snap.Analytics["overview"].Period)
}

func TestDashboard_StaleOverviewDiscarded(t *testing.T) {
	d := NewDashboard()
	a := d.Begin(domain.ConcernDashboardOverview)
	b := d.Begin(domain.ConcernDashboardOverview)

	newer := overview()
	newer.Stats.TotalDocuments = 99
	d.CompleteOverview(b, newer)
	d.CompleteOverview(a, overview())

	assert.Equal(t, 99, d.Snapshot().Overview.Stats.TotalDocuments)
}
