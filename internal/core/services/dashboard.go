package services

import (
	"context"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdesk-cli/internal/core/state"
)

// Ensure DashboardService implements the interface.
var _ driving.DashboardService = (*DashboardService)(nil)

// DashboardService manages the dashboard.
type DashboardService struct {
	sessionGuard
	gateway driven.DashboardGateway
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(store *state.Store, gateway driven.DashboardGateway, tokens driven.TokenStore) *DashboardService {
	return &DashboardService{
		sessionGuard: sessionGuard{store: store, tokens: tokens},
		gateway:      gateway,
	}
}

// Overview fetches the landing overview.
func (s *DashboardService) Overview(ctx context.Context) error {
	d := s.store.Dashboard
	tk := d.Begin(domain.ConcernDashboardOverview)

	ov, err := s.gateway.Overview(ctx)
	if err != nil {
		return s.fail(ctx, d, tk, err)
	}
	d.CompleteOverview(tk, ov)
	return nil
}

// Analytics fetches a metric for the selected date range.
func (s *DashboardService) Analytics(ctx context.Context, metric string) error {
	d := s.store.Dashboard
	tk := d.Begin(domain.ConcernDashboardAnalytics)

	if metric == "" {
		metric = "overview"
	}
	a, err := s.gateway.Analytics(ctx, domain.AnalyticsQuery{Metric: metric, Period: d.DateRange()})
	if err != nil {
		return s.fail(ctx, d, tk, err)
	}
	d.CompleteAnalytics(tk, metric, a)
	return nil
}

// SetDateRange selects the analytics period.
func (s *DashboardService) SetDateRange(r string) {
	s.store.Dashboard.SetDateRange(r)
}

// DismissAlert hides an alert for the rest of the session.
func (s *DashboardService) DismissAlert(id string) bool {
	return s.store.Dashboard.DismissAlert(id)
}

// Snapshot returns the dashboard state.
func (s *DashboardService) Snapshot() state.DashboardSnapshot {
	return s.store.Dashboard.Snapshot()
}
