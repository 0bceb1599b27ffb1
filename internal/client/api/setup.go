package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/iudanet/hubctl/internal/validation"
	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

// Параметры ожидания перезапуска backend после мастера настройки
const (
	DefaultReadyInterval = time.Second
	DefaultReadyAttempts = 30
)

// ErrNotReady backend не поднялся за отведенное число попыток
var ErrNotReady = errors.New("backend did not become ready")

// SetupStatus сообщает, пройден ли мастер первичной настройки
func (c *Client) SetupStatus(ctx context.Context) (*pkgapi.SetupStatus, error) {
	var status pkgapi.SetupStatus
	if _, err := c.do(ctx, http.MethodGet, "/setup/status", nil, &status); err != nil {
		return nil, fmt.Errorf("setup status request failed: %w", err)
	}
	return &status, nil
}

// SetupConfig возвращает конфигурацию по умолчанию для мастера
func (c *Client) SetupConfig(ctx context.Context) (*pkgapi.SetupConfig, error) {
	var cfg pkgapi.SetupConfig
	if _, err := c.do(ctx, http.MethodGet, "/setup/config", nil, &cfg); err != nil {
		return nil, fmt.Errorf("setup config request failed: %w", err)
	}
	return &cfg, nil
}

// VerifyLicense проверяет лицензионный код, возвращает сообщение сервера
func (c *Client) VerifyLicense(ctx context.Context, license string) (string, error) {
	req := pkgapi.LicenseRequest{License: license}
	if err := validation.Struct(&req); err != nil {
		return "", err
	}
	return c.setupAction(ctx, "/setup/verify-license", req)
}

// TestDatabase проверяет подключение к базе данных
func (c *Client) TestDatabase(ctx context.Context, cfg pkgapi.DatabaseSetupConfig) (string, error) {
	return c.setupAction(ctx, "/setup/test-database", cfg)
}

// TestEmbySetup проверяет подключение к Emby с настройками мастера
func (c *Client) TestEmbySetup(ctx context.Context, cfg pkgapi.EmbySetupConfig) (string, error) {
	return c.setupAction(ctx, "/setup/test-emby", cfg)
}

// TestEmailSetup проверяет подключение к SMTP с настройками мастера
func (c *Client) TestEmailSetup(ctx context.Context, cfg pkgapi.EmailSetupConfig) (string, error) {
	return c.setupAction(ctx, "/setup/test-email", cfg)
}

// FinishSetup сохраняет конфигурацию и создает администратора.
// После успеха backend перезапускается, дождаться его можно через WaitReady.
func (c *Client) FinishSetup(ctx context.Context, req pkgapi.FinishSetupRequest) (string, error) {
	if err := validation.Struct(&req); err != nil {
		return "", err
	}
	return c.setupAction(ctx, "/setup/finish", req)
}

func (c *Client) setupAction(ctx context.Context, path string, body any) (string, error) {
	env, err := c.do(ctx, http.MethodPost, path, body, nil)
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", path, err)
	}
	return env.Message, nil
}

// WaitReady ждет, пока backend снова начнет обслуживать API после перезапуска.
// Готовность - любой ответ /auth/login, кроме 404; ошибки сети означают "еще не готов".
func (c *Client) WaitReady(ctx context.Context, interval time.Duration, attempts int) error {
	if interval <= 0 {
		interval = DefaultReadyInterval
	}
	if attempts <= 0 {
		attempts = DefaultReadyAttempts
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for attempt := 1; attempt <= attempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		req, err := c.newRequest(ctx, http.MethodPost, pathLogin, struct{}{}, "", nil)
		if err != nil {
			return err
		}
		resp, err := c.send(req)
		if err != nil {
			c.logger.Debug("backend not reachable yet", "attempt", attempt, "error", err)
			continue
		}
		if resp.status != http.StatusNotFound {
			return nil
		}
		c.logger.Debug("backend not ready yet", "attempt", attempt)
	}
	return fmt.Errorf("%w after %d attempts", ErrNotReady, attempts)
}
