package api

import (
	"context"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// Overview returns the dashboard landing data.
func (c *Client) Overview(ctx context.Context) (*domain.Overview, error) {
	var resp overviewResponse
	if err := c.get(ctx, "/dashboard/overview", nil, &resp, "Failed to fetch dashboard overview"); err != nil {
		return nil, err
	}
	return resp.toDomain(c.currentUser()), nil
}

// Analytics returns analytics for the query's period.
func (c *Client) Analytics(ctx context.Context, query domain.AnalyticsQuery) (*domain.Analytics, error) {
	query.Period = analyticsPeriod(query.Period)
	q, err := encodeQuery(query)
	if err != nil {
		return nil, err
	}

	var resp analyticsResponse
	if err := c.get(ctx, "/dashboard/analytics", q, &resp, "Failed to fetch analytics"); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}
