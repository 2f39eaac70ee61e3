package state

import (
	"fmt"
	"maps"
	"slices"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// DashboardSnapshot is a copy of the dashboard domain.
type DashboardSnapshot struct {
	Overview *domain.Overview

	// Analytics is keyed by metric.
	Analytics map[string]domain.Analytics

	DateRange string
	Concerns  Concerns
}

// Dashboard is the state container for the dashboard.
type Dashboard struct {
	tracker

	overview  *domain.Overview
	analytics map[string]domain.Analytics
	dateRange string
	dismissed map[string]bool
}

// NewDashboard returns an empty container.
func NewDashboard() *Dashboard {
	return &Dashboard{
		tracker:   newTracker(),
		analytics: make(map[string]domain.Analytics),
		dateRange: domain.DefaultDateRange,
		dismissed: make(map[string]bool),
	}
}

// Snapshot returns a copy of the current state.
func (d *Dashboard) Snapshot() DashboardSnapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	snap := DashboardSnapshot{
		Analytics: maps.Clone(d.analytics),
		DateRange: d.dateRange,
		Concerns:  d.snapshot(),
	}
	if d.overview != nil {
		snap.Overview = cloneOverview(d.overview)
	}
	return snap
}

// DateRange returns the selected analytics period.
func (d *Dashboard) DateRange() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.dateRange
}

// SetDateRange selects the analytics period.
func (d *Dashboard) SetDateRange(r string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dateRange = r
}

// CompleteOverview replaces the overview. Alerts get a stable id derived
// from their type, and previously dismissed alerts stay hidden.
func (d *Dashboard) CompleteOverview(tk Ticket, ov *domain.Overview) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.succeed(tk) {
		return false
	}
	c := cloneOverview(ov)
	alerts := c.Alerts[:0]
	for i, a := range c.Alerts {
		if a.ID == "" {
			a.ID = alertID(a, i)
		}
		if d.dismissed[a.ID] {
			continue
		}
		alerts = append(alerts, a)
	}
	c.Alerts = alerts
	d.overview = c
	return true
}

// CompleteAnalytics replaces the analytics for metric.
func (d *Dashboard) CompleteAnalytics(tk Ticket, metric string, a *domain.Analytics) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.succeed(tk) {
		return false
	}
	d.analytics[metric] = *a
	return true
}

// DismissAlert hides an alert until the container is reset.
func (d *Dashboard) DismissAlert(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.dismissed[id] = true
	if d.overview == nil {
		return false
	}
	i := slices.IndexFunc(d.overview.Alerts, func(a domain.Alert) bool { return a.ID == id })
	if i < 0 {
		return false
	}
	d.overview.Alerts = slices.Delete(d.overview.Alerts, i, i+1)
	return true
}

// Reset returns the container to its initial state.
func (d *Dashboard) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
	d.overview = nil
	d.analytics = make(map[string]domain.Analytics)
	d.dateRange = domain.DefaultDateRange
	d.dismissed = make(map[string]bool)
}

func alertID(a domain.Alert, i int) string {
	if a.Type != "" {
		return a.Type
	}
	return fmt.Sprintf("alert-%d", i)
}

func cloneOverview(ov *domain.Overview) *domain.Overview {
	c := *ov
	c.RecentDocuments = cloneDocuments(ov.RecentDocuments)
	c.PendingActions = slices.Clone(ov.PendingActions)
	c.Alerts = slices.Clone(ov.Alerts)
	return &c
}
