package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iudanet/hubctl/internal/validation"
	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

// SendCode отправляет код подтверждения регистрации
func (c *Client) SendCode(ctx context.Context, req pkgapi.SendCodeRequest) error {
	if err := validation.Struct(&req); err != nil {
		return err
	}
	if _, err := c.do(ctx, http.MethodPost, "/email/send-code", req, nil); err != nil {
		return fmt.Errorf("send code request failed: %w", err)
	}
	return nil
}

// SendResetCode отправляет код для сброса забытого пароля
func (c *Client) SendResetCode(ctx context.Context, req pkgapi.SendCodeRequest) error {
	if err := validation.Struct(&req); err != nil {
		return err
	}
	if _, err := c.do(ctx, http.MethodPost, "/email/reset-code", req, nil); err != nil {
		return fmt.Errorf("send reset code request failed: %w", err)
	}
	return nil
}

// ResetPassword задает новый пароль по коду из письма
func (c *Client) ResetPassword(ctx context.Context, req pkgapi.ResetPasswordRequest) error {
	if err := validation.Struct(&req); err != nil {
		return err
	}
	if _, err := c.do(ctx, http.MethodPost, "/email/reset-password", req, nil); err != nil {
		return fmt.Errorf("reset password request failed: %w", err)
	}
	return nil
}

// TestEmail отправляет тестовое письмо с текущими настройками SMTP.
// Возвращает сообщение сервера.
func (c *Client) TestEmail(ctx context.Context, req pkgapi.SendCodeRequest) (string, error) {
	if err := validation.Struct(&req); err != nil {
		return "", err
	}
	env, err := c.do(ctx, http.MethodPost, "/email/test", req, nil)
	if err != nil {
		return "", fmt.Errorf("test email request failed: %w", err)
	}
	return env.Message, nil
}
