package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/state"
)

func newDashboardFixture() (*DashboardService, *mockGateway) {
	store := state.NewStore()
	gw := newMockGateway()
	gw.overview = &domain.Overview{
		Stats: domain.DashboardStats{TotalDocuments: 12, PendingApprovals: 3},
		Alerts: []domain.Alert{
			{Type: "deadline", Message: "2 documents due", Severity: "warning", Count: 2},
			{Type: "compliance", Message: "Review overdue", Severity: "error", Count: 1},
		},
	}
	gw.analytics = &domain.Analytics{Period: "7d", Approvals: domain.ApprovalMetrics{Total: 4, Approved: 3}}
	return NewDashboardService(store, gw, memory.NewTokenStore()), gw
}

func TestDashboardService_Overview(t *testing.T) {
	svc, _ := newDashboardFixture()

	require.NoError(t, svc.Overview(context.Background()))

	ov := svc.Snapshot().Overview
	require.NotNil(t, ov)
	assert.Equal(t, 12, ov.Stats.TotalDocuments)
	assert.Len(t, ov.Alerts, 2)
}

func TestDashboardService_DismissAlert_SurvivesRefresh(t *testing.T) {
	ctx := context.Background()
	svc, _ := newDashboardFixture()
	require.NoError(t, svc.Overview(ctx))

	assert.True(t, svc.DismissAlert("deadline"))
	assert.False(t, svc.DismissAlert("missing"))
	require.NoError(t, svc.Overview(ctx))

	alerts := svc.Snapshot().Overview.Alerts
	require.Len(t, alerts, 1)
	assert.Equal(t, "compliance", alerts[0].ID)
}

func TestDashboardService_Analytics_UsesDateRange(t *testing.T) {
	svc, gw := newDashboardFixture()
	svc.SetDateRange("7d")

	require.NoError(t, svc.Analytics(context.Background(), ""))

	assert.Equal(t, "7d", gw.lastAnalytics.Period)
	assert.Equal(t, "overview", gw.lastAnalytics.Metric)
	assert.Equal(t, 3, svc.Snapshot().Analytics["overview"].Approvals.Approved)
}

func TestDashboardService_Overview_Failure(t *testing.T) {
	svc, gw := newDashboardFixture()
	gw.failWith("Overview", &domain.RemoteError{Kind: domain.ErrorKindUnknown, StatusCode: 503, Message: "unavailable"})

	err := svc.Overview(context.Background())

	assert.ErrorIs(t, err, domain.ErrUnknown)
	snap := svc.Snapshot()
	assert.Nil(t, snap.Overview)
	assert.Equal(t, domain.StatusFailed, snap.Concerns.Status(domain.ConcernDashboardOverview))
}
