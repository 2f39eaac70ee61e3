package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

var notificationCmd = &cobra.Command{
	Use:     "notification",
	Aliases: []string{"notifications", "inbox"},
	Short:   "Read and manage notifications",
}

var notificationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications",
	Args:  cobra.NoArgs,
	RunE:  runNotificationList,
}

var notificationReadCmd = &cobra.Command{
	Use:   "read [notification-id]",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotificationRead,
}

var notificationReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification as read",
	Args:  cobra.NoArgs,
	RunE:  runNotificationReadAll,
}

var notificationDeleteCmd = &cobra.Command{
	Use:   "delete [notification-id]",
	Short: "Delete a notification",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotificationDelete,
}

var notificationSettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change delivery preferences",
	Long: `Show delivery preferences, or change the digest frequency.

Examples:
  docdesk notification settings
  docdesk notification settings --frequency daily`,
	Args: cobra.NoArgs,
	RunE: runNotificationSettings,
}

// Flags for notification commands.
var (
	notifFilters   domain.NotificationFilters
	notifFrequency string
)

func init() {
	f := notificationListCmd.Flags()
	f.BoolVar(&notifFilters.UnreadOnly, "unread", false, "only unread notifications")
	f.StringVar(&notifFilters.Type, "type", "", "notification type")
	f.StringVar(&notifFilters.Priority, "priority", "", "priority")
	f.IntVarP(&notifFilters.Limit, "limit", "n", 0, "maximum number of notifications")

	notificationSettingsCmd.Flags().StringVar(&notifFrequency, "frequency", "", "immediate, daily or weekly")

	notificationCmd.AddCommand(notificationListCmd)
	notificationCmd.AddCommand(notificationReadCmd)
	notificationCmd.AddCommand(notificationReadAllCmd)
	notificationCmd.AddCommand(notificationDeleteCmd)
	notificationCmd.AddCommand(notificationSettingsCmd)
	rootCmd.AddCommand(notificationCmd)
}

func notificationSession(cmd *cobra.Command) error {
	if notificationService == nil {
		return errors.New("notification service not configured")
	}
	return requireSession(commandContext(cmd))
}

func runNotificationList(cmd *cobra.Command, _ []string) error {
	if err := notificationSession(cmd); err != nil {
		return err
	}

	notificationService.SetFilters(notifFilters)
	if err := notificationService.List(commandContext(cmd)); err != nil {
		return fmt.Errorf("failed to list notifications: %w", err)
	}

	snap := notificationService.Snapshot()
	if jsonOutput {
		return printJSON(cmd, snap.Notifications)
	}
	if len(snap.Notifications) == 0 {
		cmd.Println("No notifications.")
		return nil
	}

	for _, n := range snap.Notifications {
		mark := " "
		if !n.IsRead {
			mark = "●"
		}
		cmd.Printf("%s %-6s %s  %s\n", mark, n.ID, formatTime(n.Timestamp), n.Title)
		if n.Message != "" {
			cmd.Printf("         %s\n", n.Message)
		}
	}
	cmd.Printf("\n%d unread of %d\n", snap.UnreadCount, len(snap.Notifications))
	return nil
}

func runNotificationRead(cmd *cobra.Command, args []string) error {
	if err := notificationSession(cmd); err != nil {
		return err
	}
	if err := notificationService.MarkAsRead(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	cmd.Printf("Notification %s marked as read.\n", args[0])
	return nil
}

func runNotificationReadAll(cmd *cobra.Command, _ []string) error {
	if err := notificationSession(cmd); err != nil {
		return err
	}
	if err := notificationService.MarkAllAsRead(commandContext(cmd)); err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	cmd.Println("All notifications marked as read.")
	return nil
}

func runNotificationDelete(cmd *cobra.Command, args []string) error {
	if err := notificationSession(cmd); err != nil {
		return err
	}
	if err := notificationService.Delete(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	cmd.Printf("Notification %s deleted.\n", args[0])
	return nil
}

func runNotificationSettings(cmd *cobra.Command, _ []string) error {
	if err := notificationSession(cmd); err != nil {
		return err
	}

	ctx := commandContext(cmd)
	if err := notificationService.Settings(ctx); err != nil {
		return fmt.Errorf("failed to get notification settings: %w", err)
	}

	if notifFrequency != "" {
		settings := notificationService.Snapshot().Settings
		settings.Frequency = notifFrequency
		if err := notificationService.UpdateSettings(ctx, settings); err != nil {
			return fmt.Errorf("failed to update notification settings: %w", err)
		}
	}

	settings := notificationService.Snapshot().Settings
	if jsonOutput {
		return printJSON(cmd, settings)
	}
	cmd.Printf("Frequency: %s\n\n", settings.Frequency)
	cmd.Println("                     Email  Push")
	row := func(name string, email, push bool) {
		cmd.Printf("  %-18s %-6t %t\n", name, email, push)
	}
	row("Document approval", settings.Email.DocumentApproval, settings.Push.DocumentApproval)
	row("Deadline reminders", settings.Email.DeadlineReminders, settings.Push.DeadlineReminders)
	row("System updates", settings.Email.SystemUpdates, settings.Push.SystemUpdates)
	row("Comments", settings.Email.Comments, settings.Push.Comments)
	return nil
}
