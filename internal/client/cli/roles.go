package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/hubctl/internal/client/permission"
	"github.com/iudanet/hubctl/internal/client/view"
	"github.com/iudanet/hubctl/internal/validation"
	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

func (c *Cli) newRolesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "roles",
		Short:       "Manage roles",
		Annotations: page("roles"),
	}
	cmd.AddCommand(
		c.newRolesListCmd(),
		c.newRolesGetCmd(),
		c.newRolesCreateCmd(),
		c.newRolesUpdateCmd(),
		c.newRolesDeleteCmd(),
		c.newRolesAssignCmd(),
	)
	return cmd
}

func roleRow(r pkgapi.Role) []string {
	return []string{
		strconv.Itoa(r.RoleID),
		r.RoleName,
		r.Description,
		strconv.Itoa(len(r.Permissions)),
		view.Date(r.CreatedAt),
	}
}

func (c *Cli) printRole(r *pkgapi.Role) error {
	keys := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		if p != nil {
			keys = append(keys, p.PermissionKey)
		}
	}
	return c.printDetails(r, [][2]string{
		{"ID", strconv.Itoa(r.RoleID)},
		{"Name", r.RoleName},
		{"Description", r.Description},
		{"Permissions", strings.Join(keys, ", ")},
		{"Created", view.DateTime(r.CreatedAt)},
	})
}

func (c *Cli) newRolesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permission.RoleView); err != nil {
				return err
			}
			roles, err := c.client.ListRoles(cmd.Context())
			if err != nil {
				return err
			}
			return c.printer.Print(roles, func() view.Table {
				t := view.Table{Headers: []string{"ID", "NAME", "DESCRIPTION", "PERMISSIONS", "CREATED"}}
				for _, r := range roles {
					t.Rows = append(t.Rows, roleRow(r))
				}
				return t
			})
		},
	}
}

func (c *Cli) newRolesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a role with its permissions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.require(permission.RoleView); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			role, err := c.client.GetRole(cmd.Context(), id)
			if err != nil {
				return err
			}
			return c.printRole(role)
		},
	}
}

func (c *Cli) newRolesCreateCmd() *cobra.Command {
	var req pkgapi.RoleRequest
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permission.RoleCreate); err != nil {
				return err
			}
			role, err := c.client.CreateRole(cmd.Context(), req)
			if err != nil {
				return err
			}
			c.notifier.Success(fmt.Sprintf("Role %s created", role.RoleName))
			return c.printRole(role)
		},
	}
	cmd.Flags().StringVar(&req.RoleName, "name", "", "role name")
	cmd.Flags().StringVar(&req.Description, "description", "", "role description")
	return cmd
}

func (c *Cli) newRolesUpdateCmd() *cobra.Command {
	var req pkgapi.RoleRequest
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.require(permission.RoleEdit); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			role, err := c.client.UpdateRole(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			c.notifier.Success("Role updated")
			return c.printRole(role)
		},
	}
	cmd.Flags().StringVar(&req.RoleName, "name", "", "new role name")
	cmd.Flags().StringVar(&req.Description, "description", "", "new description")
	return cmd
}

func (c *Cli) newRolesDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.require(permission.RoleDelete); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if ok, err := c.confirm(yes, fmt.Sprintf("Delete role %d?", id)); err != nil || !ok {
				return err
			}
			if err := c.client.DeleteRole(cmd.Context(), id); err != nil {
				return err
			}
			c.notifier.Success("Role deleted")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (c *Cli) newRolesAssignCmd() *cobra.Command {
	var (
		ids      []int
		clearAll bool
	)
	cmd := &cobra.Command{
		Use:   "assign ID",
		Short: "Replace the permission set of a role",
		Example: `  hubctl roles assign 3 --permissions 1,2,5
  hubctl roles assign 3 --clear`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.require(permission.PermissionAssign); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if clearAll {
				ids = nil
			} else if !cmd.Flags().Changed("permissions") {
				return fmt.Errorf("%w: pass --permissions or --clear", validation.ErrValidation)
			}
			if err := c.client.AssignPermissions(cmd.Context(), id, ids); err != nil {
				return err
			}
			c.notifier.Success(fmt.Sprintf("Assigned %d permissions to role %d", len(ids), id))
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&ids, "permissions", nil, "permission ids, comma separated")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "remove all permissions from the role")
	cmd.MarkFlagsMutuallyExclusive("permissions", "clear")
	return cmd
}

func (c *Cli) newPermissionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "permissions",
		Short:       "Browse the permission catalog",
		Annotations: page("permissions"),
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all permissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permission.PermissionView); err != nil {
				return err
			}
			perms, err := c.client.ListPermissions(cmd.Context())
			if err != nil {
				return err
			}
			return c.printer.Print(perms, func() view.Table {
				t := view.Table{Headers: []string{"ID", "KEY", "NAME", "DESCRIPTION"}}
				for _, p := range perms {
					t.Rows = append(t.Rows, []string{strconv.Itoa(p.PermissionID), p.PermissionKey, p.PermissionName, p.Description})
				}
				return t
			})
		},
	})
	return cmd
}
