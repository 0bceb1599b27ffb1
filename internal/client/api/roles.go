package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iudanet/hubctl/internal/validation"
	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

// ListRoles возвращает все роли
func (c *Client) ListRoles(ctx context.Context) ([]pkgapi.Role, error) {
	var roles []pkgapi.Role
	if _, err := c.do(ctx, http.MethodGet, "/roles", nil, &roles); err != nil {
		return nil, fmt.Errorf("list roles request failed: %w", err)
	}
	return roles, nil
}

// GetRole возвращает роль вместе с правами
func (c *Client) GetRole(ctx context.Context, id int) (*pkgapi.Role, error) {
	var role pkgapi.Role
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/roles/%d", id), nil, &role); err != nil {
		return nil, fmt.Errorf("get role request failed: %w", err)
	}
	return &role, nil
}

// CreateRole создает роль
func (c *Client) CreateRole(ctx context.Context, req pkgapi.RoleRequest) (*pkgapi.Role, error) {
	if req.RoleName == "" {
		return nil, &validation.Error{Fields: map[string]string{"role_name": "field 'role_name' is required"}}
	}
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	var role pkgapi.Role
	if _, err := c.do(ctx, http.MethodPost, "/roles", req, &role); err != nil {
		return nil, fmt.Errorf("create role request failed: %w", err)
	}
	return &role, nil
}

// UpdateRole изменяет роль
func (c *Client) UpdateRole(ctx context.Context, id int, req pkgapi.RoleRequest) (*pkgapi.Role, error) {
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	var role pkgapi.Role
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/roles/%d", id), req, &role); err != nil {
		return nil, fmt.Errorf("update role request failed: %w", err)
	}
	return &role, nil
}

// DeleteRole удаляет роль
func (c *Client) DeleteRole(ctx context.Context, id int) error {
	if _, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/roles/%d", id), nil, nil); err != nil {
		return fmt.Errorf("delete role request failed: %w", err)
	}
	return nil
}

// AssignPermissions заменяет набор прав роли
func (c *Client) AssignPermissions(ctx context.Context, id int, permissionIDs []int) error {
	req := pkgapi.AssignPermissionsRequest{PermissionIDs: permissionIDs}
	if req.PermissionIDs == nil {
		req.PermissionIDs = []int{}
	}
	if _, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/roles/%d/permissions", id), req, nil); err != nil {
		return fmt.Errorf("assign permissions request failed: %w", err)
	}
	return nil
}

// ListPermissions возвращает каталог прав
func (c *Client) ListPermissions(ctx context.Context) ([]pkgapi.Permission, error) {
	var perms []pkgapi.Permission
	if _, err := c.do(ctx, http.MethodGet, "/permissions", nil, &perms); err != nil {
		return nil, fmt.Errorf("list permissions request failed: %w", err)
	}
	return perms, nil
}
