// Package cli provides the cobra command tree for docdesk.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdesk-cli/internal/logger"
)

// version is set by the composition root.
var version = "dev"

// Global flags.
var (
	verbose    bool
	jsonOutput bool
)

// Services set by the composition root.
var (
	authService         driving.AuthService
	documentService     driving.DocumentService
	notificationService driving.NotificationService
	dashboardService    driving.DashboardService
	searchService       driving.SearchService
	userService         driving.UserService
	settingsService     driving.SettingsService
	uploadJournal       driven.UploadJournal
)

// ErrNotSignedIn is returned by commands that need a session when none
// could be restored.
var ErrNotSignedIn = errors.New("not signed in; run 'docdesk login'")

var rootCmd = &cobra.Command{
	Use:   "docdesk",
	Short: "Terminal client for the document management system",
	Long: `docdesk talks to the document management API from the terminal.

Sign in once with 'docdesk login'; the session token is kept in
~/.docdesk/data/docdesk.db until you sign out or it expires.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

// Services holds the driving ports the commands call.
type Services struct {
	Auth          driving.AuthService
	Documents     driving.DocumentService
	Notifications driving.NotificationService
	Dashboard     driving.DashboardService
	Search        driving.SearchService
	Users         driving.UserService
	Settings      driving.SettingsService

	// Journal backs 'docdesk watch'.
	Journal driven.UploadJournal
}

// SetServices wires the command tree to its services.
func SetServices(s Services) {
	authService = s.Auth
	documentService = s.Documents
	notificationService = s.Notifications
	dashboardService = s.Dashboard
	searchService = s.Search
	userService = s.Users
	settingsService = s.Settings
	uploadJournal = s.Journal
}

// SetVersion sets the version reported by 'docdesk version'.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
}

// requireSession restores the stored session if needed.
func requireSession(ctx context.Context) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}
	if authService.Snapshot().IsAuthenticated() {
		return nil
	}
	ok, err := authService.Restore(ctx)
	if err != nil {
		return fmt.Errorf("restoring session: %w", err)
	}
	if !ok {
		return ErrNotSignedIn
	}
	return nil
}

// commandContext returns the command's context, or Background in tests
// that call Execute without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
