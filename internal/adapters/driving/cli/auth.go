package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the document API",
	Long: `Sign in with your username and password.

The password is read without echo when --password is not given.

Examples:
  docdesk login
  docdesk login --username alice`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update your profile",
	Long: `Update your own email, full name or language preference.

Examples:
  docdesk profile --full-name "Alice Smith"
  docdesk profile --language ml`,
	Args: cobra.NoArgs,
	RunE: runProfile,
}

// Flags for login and profile.
var (
	loginUsername   string
	loginPassword   string
	profileEmail    string
	profileFullName string
	profileLanguage string
)

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password (prompted if omitted)")

	profileCmd.Flags().StringVar(&profileEmail, "email", "", "new email address")
	profileCmd.Flags().StringVar(&profileFullName, "full-name", "", "new full name")
	profileCmd.Flags().StringVar(&profileLanguage, "language", "", "language preference (en, ml)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(profileCmd)
}

// readPassword reads a password without echo when stdin is a terminal.
var readPassword = func(fd int) ([]byte, error) {
	return term.ReadPassword(fd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	username := strings.TrimSpace(loginUsername)
	if username == "" {
		cmd.Print("Username: ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("reading username: %w", err)
		}
		username = strings.TrimSpace(line)
	}

	password := loginPassword
	if password == "" {
		cmd.Print("Password: ")
		fd := int(os.Stdin.Fd())
		if term.IsTerminal(fd) {
			raw, err := readPassword(fd)
			cmd.Println()
			if err != nil {
				return fmt.Errorf("reading password: %w", err)
			}
			password = string(raw)
		} else {
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("reading password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}
	}

	ctx := commandContext(cmd)
	if err := authService.Login(ctx, domain.Credentials{Username: username, Password: password}); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	user := authService.Snapshot().Session.User
	cmd.Printf("Signed in as %s (%s).\n", user.DisplayName(), user.Role)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	ctx := commandContext(cmd)
	// Restore so the server-side session is ended too. A missing or dead
	// token still leads to a local sign-out.
	_, _ = authService.Restore(ctx)

	if err := authService.Logout(ctx); err != nil {
		cmd.Printf("Signed out locally (server: %v).\n", err)
		return nil
	}
	cmd.Println("Signed out.")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	if err := requireSession(ctx); err != nil {
		return err
	}

	user := authService.Snapshot().Session.User
	if jsonOutput {
		return printJSON(cmd, user)
	}

	cmd.Printf("User: %s\n\n", user.DisplayName())
	cmd.Printf("  ID:         %s\n", user.ID)
	cmd.Printf("  Username:   %s\n", user.Username)
	cmd.Printf("  Email:      %s\n", orDash(user.Email))
	cmd.Printf("  Role:       %s\n", user.Role)
	cmd.Printf("  Department: %s\n", orDash(user.Department))
	cmd.Printf("  Language:   %s\n", orDash(user.LanguagePreference))
	cmd.Printf("  Last login: %s\n", formatTime(user.LastLogin))
	return nil
}

func runProfile(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	if err := requireSession(ctx); err != nil {
		return err
	}

	var update domain.ProfileUpdate
	if cmd.Flags().Changed("email") {
		update.Email = &profileEmail
	}
	if cmd.Flags().Changed("full-name") {
		update.FullName = &profileFullName
	}
	if cmd.Flags().Changed("language") {
		update.LanguagePreference = &profileLanguage
	}
	if update == (domain.ProfileUpdate{}) {
		return errors.New("nothing to update; pass --email, --full-name or --language")
	}

	if err := authService.UpdateProfile(ctx, update); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	cmd.Println("Profile updated.")
	return nil
}
