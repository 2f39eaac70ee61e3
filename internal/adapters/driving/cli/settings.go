package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the API connection and client behaviour.

Use subcommands to change a single setting or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsURLCmd = &cobra.Command{
	Use:   "url [base-url]",
	Short: "Set the API base URL",
	Long: `Set the root of the document API.

Example:
  docdesk settings url https://docs.example.com/api/v1`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsURL,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a single setting",
	Long: `Change a single setting.

Keys:
  timeout    - request timeout in seconds
  rate       - requests per second, 0 disables throttling
  debounce   - suggestion delay in milliseconds
  page-size  - documents per page
  log-file   - rotating log file path, empty disables
  verbose    - true or false, debug logging without --verbose`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsURLCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if jsonOutput {
		return printJSON(cmd, settings)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[API]")
	cmd.Printf("  Base URL: %s\n", settings.API.BaseURL)
	cmd.Printf("  Timeout: %s\n", settings.API.Timeout())
	if settings.API.RatePerSecond > 0 {
		cmd.Printf("  Rate limit: %g req/s\n", settings.API.RatePerSecond)
	} else {
		cmd.Println("  Rate limit: off")
	}
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Suggestion delay: %s\n", settings.Search.Debounce())
	cmd.Println()

	cmd.Println("[Documents]")
	cmd.Printf("  Page size: %d\n", settings.Documents.PageSize)
	cmd.Println()

	cmd.Println("[Log]")
	if settings.Log.File != "" {
		cmd.Printf("  File: %s\n", settings.Log.File)
	} else {
		cmd.Println("  File: (stderr only)")
	}
	cmd.Printf("  Verbose: %t\n", settings.Log.Verbose)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'docdesk settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("DocDesk Settings Wizard")
	cmd.Println("=======================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Step 1: API Connection")
	cmd.Println("----------------------")
	cmd.Printf("Base URL [%s]: ", settings.API.BaseURL)
	if input := readLine(reader); input != "" {
		settings.API.BaseURL = strings.TrimRight(input, "/")
	}
	if !settings.API.IsConfigured() {
		return fmt.Errorf("invalid base url %q: %w", settings.API.BaseURL, domain.ErrInvalidInput)
	}
	cmd.Printf("Timeout in seconds [%d]: ", settings.API.TimeoutSeconds)
	settings.API.TimeoutSeconds = parseNumber(readLine(reader), settings.API.TimeoutSeconds)
	cmd.Println()

	cmd.Println("Step 2: Client Behaviour")
	cmd.Println("------------------------")
	cmd.Printf("Suggestion delay in ms [%d]: ", settings.Search.DebounceMS)
	settings.Search.DebounceMS = parseNumber(readLine(reader), settings.Search.DebounceMS)
	cmd.Printf("Documents per page [%d]: ", settings.Documents.PageSize)
	settings.Documents.PageSize = parseNumber(readLine(reader), settings.Documents.PageSize)
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("All settings are valid and saved.")
	}
	return nil
}

func runSettingsURL(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.SetBaseURL(args[0]); err != nil {
		return fmt.Errorf("failed to set base url: %w", err)
	}
	cmd.Printf("API base URL set to: %s\n", strings.TrimRight(args[0], "/"))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	key, value := args[0], strings.TrimSpace(args[1])
	switch key {
	case "timeout":
		n, err := positiveInt(value)
		if err != nil {
			return err
		}
		settings.API.TimeoutSeconds = n
	case "rate":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("invalid rate %q: %w", value, domain.ErrInvalidInput)
		}
		settings.API.RatePerSecond = f
	case "debounce":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid debounce %q: %w", value, domain.ErrInvalidInput)
		}
		settings.Search.DebounceMS = n
	case "page-size":
		n, err := positiveInt(value)
		if err != nil {
			return err
		}
		settings.Documents.PageSize = n
	case "log-file":
		settings.Log.File = value
	case "verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid verbose %q: %w", value, domain.ErrInvalidInput)
		}
		settings.Log.Verbose = b
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Printf("Set %s to %q.\n", key, value)
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println("Settings restored to defaults.")
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseNumber(input string, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 0 {
		return defaultVal
	}
	return val
}

func positiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("expected a positive number, got %q: %w", s, domain.ErrInvalidInput)
	}
	return n, nil
}
