package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for docdesk.

The TUI shows the dashboard, the document list with approve and reject
shortcuts, the notification inbox and search with live title suggestions.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Search / Select
  Esc      - Back / Cancel
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts collects the services the TUI drives.
func tuiPorts() *tui.Ports {
	return &tui.Ports{
		Auth:          authService,
		Search:        searchService,
		Documents:     documentService,
		Notifications: notificationService,
		Dashboard:     dashboardService,
		Settings:      settingsService,
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ctx := commandContext(cmd)
	if err := requireSession(ctx); err != nil {
		return err
	}

	app, err := tui.NewApp(tuiPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
