package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

var userCmd = &cobra.Command{
	Use:     "user",
	Aliases: []string{"users"},
	Short:   "Administer user accounts",
	Long:    `List, create, change and deactivate user accounts. Requires the admin role.`,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Args:  cobra.NoArgs,
	RunE:  runUserList,
}

var userGetCmd = &cobra.Command{
	Use:   "get [user-id]",
	Short: "Show a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserGet,
}

var userCreateCmd = &cobra.Command{
	Use:   "create [username]",
	Short: "Create a user",
	Long: `Create a user account.

Example:
  docdesk user create bob --email bob@example.com --password s3cret --role finance`,
	Args: cobra.ExactArgs(1),
	RunE: runUserCreate,
}

var userUpdateCmd = &cobra.Command{
	Use:   "update [user-id]",
	Short: "Change a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserUpdate,
}

var userDeactivateCmd = &cobra.Command{
	Use:   "deactivate [user-id]",
	Short: "Deactivate a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserDeactivate,
}

// Flags for user commands.
var (
	userFilters    domain.UserFilters
	userEmail      string
	userPassword   string
	userFullName   string
	userRole       string
	userDepartment string
	userActive     bool
)

func init() {
	userListCmd.Flags().StringVar(&userFilters.Role, "role", "", "role")
	userListCmd.Flags().StringVar(&userFilters.Department, "department", "", "department")
	userListCmd.Flags().IntVarP(&userFilters.Limit, "limit", "n", 0, "maximum number of users")

	for _, c := range []*cobra.Command{userCreateCmd, userUpdateCmd} {
		c.Flags().StringVar(&userEmail, "email", "", "email address")
		c.Flags().StringVar(&userFullName, "full-name", "", "full name")
		c.Flags().StringVar(&userRole, "role", "", "role (admin, executive, maintenance, compliance, finance, user)")
		c.Flags().StringVar(&userDepartment, "department", "", "department")
	}
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "initial password")
	userUpdateCmd.Flags().BoolVar(&userActive, "active", true, "whether the account is active")

	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userGetCmd)
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userUpdateCmd)
	userCmd.AddCommand(userDeactivateCmd)
	rootCmd.AddCommand(userCmd)
}

func userSession(cmd *cobra.Command) error {
	if userService == nil {
		return errors.New("user service not configured")
	}
	return requireSession(commandContext(cmd))
}

func printUserLine(cmd *cobra.Command, u *domain.User) {
	active := "active"
	if !u.IsActive {
		active = "inactive"
	}
	cmd.Printf("  %-6s %-16s %-12s %-14s %s\n", u.ID, u.Username, u.Role, orDash(u.Department), active)
}

func runUserList(cmd *cobra.Command, _ []string) error {
	if err := userSession(cmd); err != nil {
		return err
	}
	if err := userService.List(commandContext(cmd), userFilters); err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	users := userService.Snapshot().Users
	if jsonOutput {
		return printJSON(cmd, users)
	}
	if len(users) == 0 {
		cmd.Println("No users found.")
		return nil
	}
	for i := range users {
		printUserLine(cmd, &users[i])
	}
	return nil
}

func runUserGet(cmd *cobra.Command, args []string) error {
	if err := userSession(cmd); err != nil {
		return err
	}
	if err := userService.Get(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	u := userService.Snapshot().Selected
	if u == nil {
		return fmt.Errorf("user %s: %w", args[0], domain.ErrNotFound)
	}
	if jsonOutput {
		return printJSON(cmd, u)
	}
	cmd.Printf("User: %s\n\n", u.DisplayName())
	cmd.Printf("  ID:         %s\n", u.ID)
	cmd.Printf("  Username:   %s\n", u.Username)
	cmd.Printf("  Email:      %s\n", orDash(u.Email))
	cmd.Printf("  Role:       %s\n", u.Role)
	cmd.Printf("  Department: %s\n", orDash(u.Department))
	cmd.Printf("  Active:     %t\n", u.IsActive)
	cmd.Printf("  Created:    %s\n", formatTime(u.CreatedAt))
	cmd.Printf("  Last login: %s\n", formatTime(u.LastLogin))
	return nil
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	if err := userSession(cmd); err != nil {
		return err
	}

	role := domain.Role(userRole)
	if role == "" {
		role = domain.RoleUser
	}
	user, err := userService.Create(commandContext(cmd), domain.NewUser{
		Username:   args[0],
		Email:      userEmail,
		Password:   userPassword,
		FullName:   userFullName,
		Role:       role,
		Department: userDepartment,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	cmd.Printf("Created user %s (%s).\n", user.Username, user.ID)
	return nil
}

func runUserUpdate(cmd *cobra.Command, args []string) error {
	if err := userSession(cmd); err != nil {
		return err
	}

	var update domain.UserUpdate
	flags := cmd.Flags()
	if flags.Changed("email") {
		update.Email = &userEmail
	}
	if flags.Changed("full-name") {
		update.FullName = &userFullName
	}
	if flags.Changed("department") {
		update.Department = &userDepartment
	}
	if flags.Changed("role") {
		role := domain.Role(userRole)
		if !role.IsValid() {
			return fmt.Errorf("unknown role %q: %w", userRole, domain.ErrInvalidInput)
		}
		update.Role = &role
	}
	if flags.Changed("active") {
		update.IsActive = &userActive
	}
	if update == (domain.UserUpdate{}) {
		return errors.New("nothing to update")
	}

	if err := userService.Update(commandContext(cmd), args[0], update); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	cmd.Printf("User %s updated.\n", args[0])
	return nil
}

func runUserDeactivate(cmd *cobra.Command, args []string) error {
	if err := userSession(cmd); err != nil {
		return err
	}
	if err := userService.Deactivate(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	cmd.Printf("User %s deactivated.\n", args[0])
	return nil
}
