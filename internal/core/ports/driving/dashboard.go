package driving

import (
	"context"

	"github.com/custodia-labs/docdesk-cli/internal/core/state"
)

// DashboardService manages the dashboard.
type DashboardService interface {
	// Overview fetches the landing overview.
	Overview(ctx context.Context) error

	// Analytics fetches a metric for the selected date range.
	Analytics(ctx context.Context, metric string) error

	// SetDateRange selects the analytics period, e.g. "7d" or "30d".
	SetDateRange(r string)

	// DismissAlert hides an alert for the rest of the session.
	DismissAlert(id string) bool

	// Snapshot returns the dashboard state.
	Snapshot() state.DashboardSnapshot
}
