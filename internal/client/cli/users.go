package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/hubctl/internal/client/permission"
	"github.com/iudanet/hubctl/internal/client/view"
	"github.com/iudanet/hubctl/internal/validation"
	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

func (c *Cli) newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "users",
		Short:       "Manage users",
		Annotations: page("users"),
	}
	cmd.AddCommand(
		c.newUsersListCmd(),
		c.newUsersGetCmd(),
		c.newUsersCreateCmd(),
		c.newUsersUpdateCmd(),
		c.newUsersDeleteCmd(),
		c.newUsersResetPasswordCmd(),
		c.newUsersVIPCmd(),
		c.newUsersSetStatusCmd(),
	)
	return cmd
}

func (c *Cli) newUsersListCmd() *cobra.Command {
	var (
		params pkgapi.UserListParams
		status int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permission.UserView); err != nil {
				return err
			}
			params.Status = intFlag(cmd, "status", status)

			resp, err := c.client.ListUsers(cmd.Context(), params)
			if err != nil {
				return err
			}
			return view.PrintPage(c.printer, view.NewPage(resp), params.Page, params.PageSize, userHeaders, c.userRow)
		},
	}
	cmd.Flags().StringVarP(&params.Keyword, "keyword", "k", "", "search by username or email")
	cmd.Flags().IntVar(&status, "status", 0, "filter by status: 1 enabled, 0 disabled")
	cmd.Flags().IntVar(&params.RoleID, "role", 0, "filter by role id")
	addPageFlags(cmd, &params.PageParams)
	return cmd
}

func (c *Cli) newUsersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.require(permission.UserView); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			user, err := c.client.GetUser(cmd.Context(), id)
			if err != nil {
				return err
			}
			return c.printUser(user)
		},
	}
}

func (c *Cli) newUsersCreateCmd() *cobra.Command {
	var (
		req pkgapi.UserCreateRequest
		src passwordSource
	)
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a user",
		Example: `  hubctl users create --username alice --role 3 --email alice@example.com`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permission.UserCreate); err != nil {
				return err
			}
			password, err := c.readNewPassword(src)
			if err != nil {
				return err
			}
			req.Password = password

			user, err := c.client.CreateUser(cmd.Context(), req)
			if err != nil {
				return err
			}
			c.notifier.Success(fmt.Sprintf("User %s created", user.Username))
			return c.printUser(user)
		},
	}
	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "username")
	cmd.Flags().StringVar(&req.Email, "email", "", "email")
	cmd.Flags().IntVar(&req.RoleID, "role", 0, "role id")
	cmd.Flags().StringVar(&req.EmbyUserID, "emby-user-id", "", "linked Emby user id")
	addPasswordFlags(cmd, &src)
	return cmd
}

func (c *Cli) newUsersUpdateCmd() *cobra.Command {
	var (
		req    pkgapi.UserUpdateRequest
		status int
	)
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.require(permission.UserEdit); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			req.Status = intFlag(cmd, "status", status)

			user, err := c.client.UpdateUser(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			c.notifier.Success("User updated")
			return c.printUser(user)
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "new email")
	cmd.Flags().IntVar(&req.RoleID, "role", 0, "new role id")
	cmd.Flags().IntVar(&status, "status", 0, "new status: 1 enabled, 0 disabled")
	cmd.Flags().StringVar(&req.EmbyUserID, "emby-user-id", "", "linked Emby user id")
	return cmd
}

func (c *Cli) newUsersDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.require(permission.UserDelete); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if ok, err := c.confirm(yes, fmt.Sprintf("Delete user %d?", id)); err != nil || !ok {
				return err
			}
			if err := c.client.DeleteUser(cmd.Context(), id); err != nil {
				return err
			}
			c.notifier.Success("User deleted")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (c *Cli) newUsersResetPasswordCmd() *cobra.Command {
	var src passwordSource
	cmd := &cobra.Command{
		Use:   "reset-password ID",
		Short: "Set a new password for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.require(permission.UserEdit); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			password, err := c.readNewPassword(src)
			if err != nil {
				return err
			}
			if err := c.client.ResetUserPassword(cmd.Context(), id, pkgapi.PasswordRequest{Password: password}); err != nil {
				return err
			}
			c.notifier.Success("Password reset")
			return nil
		},
	}
	addPasswordFlags(cmd, &src)
	return cmd
}

func (c *Cli) newUsersVIPCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "vip ID",
		Short: "Extend VIP for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.require(permission.UserEdit); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.client.SetUserVIP(cmd.Context(), id, pkgapi.SetVIPRequest{Days: days}); err != nil {
				return err
			}
			c.notifier.Success(fmt.Sprintf("VIP extended by %d days", days))
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "number of days to add")
	return cmd
}

func (c *Cli) newUsersSetStatusCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:     "set-status ID...",
		Short:   "Enable or disable several users at once",
		Example: `  hubctl users set-status --status disabled 4 5 6`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.require(permission.UserEdit); err != nil {
				return err
			}
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			req := pkgapi.BatchStatusRequest{UserIDs: ids}
			switch strings.ToLower(status) {
			case "enabled", "enable", "1":
				req.Status = pkgapi.UserStatusEnabled
			case "disabled", "disable", "0":
				req.Status = pkgapi.UserStatusDisabled
			default:
				return fmt.Errorf("%w: status must be enabled or disabled", validation.ErrValidation)
			}

			if err := c.client.BatchUpdateUserStatus(cmd.Context(), req); err != nil {
				return err
			}
			c.notifier.Success(fmt.Sprintf("Status updated for %d users", len(ids)))
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "enabled or disabled")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}

// confirm спрашивает подтверждение, если не передан --yes
func (c *Cli) confirm(yes bool, prompt string) (bool, error) {
	if yes {
		return true, nil
	}
	ok, err := c.io.Confirm(prompt)
	if err != nil {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	if !ok {
		c.io.Println("Canceled")
	}
	return ok, nil
}
