package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iudanet/hubctl/internal/validation"
	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

// ListUsers возвращает страницу пользователей
func (c *Client) ListUsers(ctx context.Context, params pkgapi.UserListParams) (*pkgapi.PageResponse[pkgapi.User], error) {
	var page pkgapi.PageResponse[pkgapi.User]
	if _, err := c.do(ctx, http.MethodGet, "/users", nil, &page, Query(params)); err != nil {
		return nil, fmt.Errorf("list users request failed: %w", err)
	}
	return &page, nil
}

// GetUser возвращает пользователя по ID
func (c *Client) GetUser(ctx context.Context, id int) (*pkgapi.User, error) {
	var user pkgapi.User
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, &user); err != nil {
		return nil, fmt.Errorf("get user request failed: %w", err)
	}
	return &user, nil
}

// CreateUser создает пользователя
func (c *Client) CreateUser(ctx context.Context, req pkgapi.UserCreateRequest) (*pkgapi.User, error) {
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	var user pkgapi.User
	if _, err := c.do(ctx, http.MethodPost, "/users", req, &user); err != nil {
		return nil, fmt.Errorf("create user request failed: %w", err)
	}
	return &user, nil
}

// UpdateUser изменяет пользователя
func (c *Client) UpdateUser(ctx context.Context, id int, req pkgapi.UserUpdateRequest) (*pkgapi.User, error) {
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	var user pkgapi.User
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), req, &user); err != nil {
		return nil, fmt.Errorf("update user request failed: %w", err)
	}
	return &user, nil
}

// DeleteUser удаляет пользователя
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	if _, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil); err != nil {
		return fmt.Errorf("delete user request failed: %w", err)
	}
	return nil
}

// ResetUserPassword задает пользователю новый пароль (действие администратора)
func (c *Client) ResetUserPassword(ctx context.Context, id int, req pkgapi.PasswordRequest) error {
	if err := validation.Struct(&req); err != nil {
		return err
	}
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d/password", id), req, nil); err != nil {
		return fmt.Errorf("reset user password request failed: %w", err)
	}
	return nil
}

// SetUserVIP продлевает VIP пользователя
func (c *Client) SetUserVIP(ctx context.Context, id int, req pkgapi.SetVIPRequest) error {
	if err := validation.Struct(&req); err != nil {
		return err
	}
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d/vip", id), req, nil); err != nil {
		return fmt.Errorf("set user vip request failed: %w", err)
	}
	return nil
}

// BatchUpdateUserStatus включает или отключает несколько пользователей
func (c *Client) BatchUpdateUserStatus(ctx context.Context, req pkgapi.BatchStatusRequest) error {
	if err := validation.Struct(&req); err != nil {
		return err
	}
	if _, err := c.do(ctx, http.MethodPut, "/users/batch/status", req, nil); err != nil {
		return fmt.Errorf("batch update user status request failed: %w", err)
	}
	return nil
}
