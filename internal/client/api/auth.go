package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iudanet/hubctl/internal/validation"
	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

const pathLogin = "/auth/login"

// Login обменивает учетные данные на токен и профиль.
// Неверный пароль приходит конвертом с code 401 и возвращается как *BusinessError.
func (c *Client) Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.LoginResponse, error) {
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	var resp pkgapi.LoginResponse
	if _, err := c.do(ctx, http.MethodPost, pathLogin, req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Refresh явно обменивает текущий токен на новый. Сохранение токена - забота вызывающего.
func (c *Client) Refresh(ctx context.Context) (*pkgapi.RefreshResponse, error) {
	var resp pkgapi.RefreshResponse
	if _, err := c.do(ctx, http.MethodPost, pathRefresh, nil, &resp); err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	return &resp, nil
}

// Logout сообщает серверу о выходе
func (c *Client) Logout(ctx context.Context, opts ...RequestOption) error {
	if _, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, opts...); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// CurrentUser возвращает профиль владельца токена
func (c *Client) CurrentUser(ctx context.Context) (*pkgapi.User, error) {
	var user pkgapi.User
	if _, err := c.do(ctx, http.MethodGet, "/auth/current", nil, &user); err != nil {
		return nil, fmt.Errorf("get current user request failed: %w", err)
	}
	return &user, nil
}

// Register регистрирует пользователя по коду из письма
func (c *Client) Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.RegisterResponse, error) {
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	var resp pkgapi.RegisterResponse
	if _, err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// ChangePassword меняет пароль текущего пользователя
func (c *Client) ChangePassword(ctx context.Context, req pkgapi.PasswordRequest) error {
	if err := validation.Struct(&req); err != nil {
		return err
	}
	if _, err := c.do(ctx, http.MethodPut, "/auth/password", req, nil); err != nil {
		return fmt.Errorf("change password request failed: %w", err)
	}
	return nil
}
