package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the dashboard overview",
	Args:  cobra.NoArgs,
	RunE:  runDashboard,
}

var dashboardAnalyticsCmd = &cobra.Command{
	Use:   "analytics [metric]",
	Short: "Show analytics for a period",
	Long: `Show approval analytics for a period.

Examples:
  docdesk dashboard analytics
  docdesk dashboard analytics --range 7d`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDashboardAnalytics,
}

var dashboardRange string

func init() {
	dashboardAnalyticsCmd.Flags().StringVarP(&dashboardRange, "range", "r", "", "date range (7d, 30d, 90d, 1y)")
	dashboardCmd.AddCommand(dashboardAnalyticsCmd)
	rootCmd.AddCommand(dashboardCmd)
}

func dashboardSession(cmd *cobra.Command) error {
	if dashboardService == nil {
		return errors.New("dashboard service not configured")
	}
	return requireSession(commandContext(cmd))
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	if err := dashboardSession(cmd); err != nil {
		return err
	}
	if err := dashboardService.Overview(commandContext(cmd)); err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}

	ov := dashboardService.Snapshot().Overview
	if ov == nil {
		return errors.New("no dashboard data")
	}
	if jsonOutput {
		return printJSON(cmd, ov)
	}

	s := ov.Stats
	cmd.Println("Dashboard")
	cmd.Println("=========")
	cmd.Printf("  Documents:         %d\n", s.TotalDocuments)
	cmd.Printf("  Pending approvals: %d\n", s.PendingApprovals)
	cmd.Printf("  Recent uploads:    %d\n", s.RecentUploads)
	cmd.Printf("  Compliance rate:   %.1f%%\n", s.ComplianceRate)
	cmd.Printf("  Unread:            %d\n", s.UnreadNotifications)

	if len(ov.Alerts) > 0 {
		cmd.Println("\nAlerts:")
		for _, a := range ov.Alerts {
			cmd.Printf("  [%s] %s\n", a.Severity, a.Message)
		}
	}
	if len(ov.PendingActions) > 0 {
		cmd.Println("\nWaiting on you:")
		for _, p := range ov.PendingActions {
			cmd.Printf("  %-6s %-8s %s\n", p.DocumentID, p.Priority, p.Title)
		}
	}
	if len(ov.RecentDocuments) > 0 {
		cmd.Println("\nRecent documents:")
		for i := range ov.RecentDocuments {
			printDocumentLine(cmd, &ov.RecentDocuments[i])
		}
	}
	return nil
}

func runDashboardAnalytics(cmd *cobra.Command, args []string) error {
	if err := dashboardSession(cmd); err != nil {
		return err
	}

	metric := ""
	if len(args) == 1 {
		metric = args[0]
	}
	if dashboardRange != "" {
		dashboardService.SetDateRange(dashboardRange)
	}
	if err := dashboardService.Analytics(commandContext(cmd), metric); err != nil {
		return fmt.Errorf("failed to load analytics: %w", err)
	}

	snap := dashboardService.Snapshot()
	if metric == "" {
		metric = "overview"
	}
	a, ok := snap.Analytics[metric]
	if !ok {
		return fmt.Errorf("no analytics for %q", metric)
	}
	if jsonOutput {
		return printJSON(cmd, a)
	}

	cmd.Printf("Analytics (%s, %s to %s)\n\n", a.Period, orDash(a.Start), orDash(a.End))
	m := a.Approvals
	cmd.Printf("  Total: %d  Approved: %d  Rejected: %d  Pending: %d\n", m.Total, m.Approved, m.Rejected, m.Pending)
	cmd.Printf("  Approval rate: %.1f%%  Rejection rate: %.1f%%\n", m.ApprovalRate, m.RejectionRate)

	if len(a.Departments) > 0 {
		names := make([]string, 0, len(a.Departments))
		for name := range a.Departments {
			names = append(names, name)
		}
		sort.Strings(names)
		cmd.Println("\n  Departments:")
		for _, name := range names {
			d := a.Departments[name]
			cmd.Printf("    %-16s %4d total  %4d approved  %.1f%%\n", name, d.Total, d.Approved, d.ApprovalRate)
		}
	}
	return nil
}
