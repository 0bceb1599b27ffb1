package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/iudanet/hubctl/internal/client/token"
	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

const (
	pathRefresh = "/auth/refresh"

	// refreshKey - единственный ключ группы: в полете не больше одного обновления
	refreshKey = "refresh"
)

// renew возвращает токен для текущего запроса после упреждающего обновления.
// Конкурентные вызовы присоединяются к уже идущему обновлению и получают тот же результат.
// При неудаче возвращается устаревший токен: запрос все равно уходит, а сервер решит сам.
func (c *Client) renew(ctx context.Context, stale string) string {
	v, _, _ := c.refreshGroup.Do(refreshKey, func() (any, error) {
		// Обновление могло завершиться, пока вызывающий проверял срок
		if cur := c.store.Token(); cur != "" && cur != stale &&
			!token.NeedsRenewal(cur, c.now(), c.refreshThreshold) {
			return cur, nil
		}

		// Обновление общее для всех ожидающих, отмена одного из них не должна его прерывать
		fresh, err := c.refreshToken(context.WithoutCancel(ctx), stale)
		if err != nil {
			c.logger.Warn("token refresh failed, continuing with current token", "error", err)
			return stale, nil
		}
		return fresh, nil
	})

	tok, ok := v.(string)
	if !ok || tok == "" {
		return stale
	}
	return tok
}

// refreshToken выполняет POST /auth/refresh с текущим токеном и сохраняет новый.
// Запрос тихий и не сбрасывает сессию при 401.
func (c *Client) refreshToken(ctx context.Context, current string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, pathRefresh, nil, current, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.send(req)
	if err != nil {
		return "", fmt.Errorf("refresh request failed: %w", err)
	}
	if sentinel := statusSentinel(resp.status); sentinel != nil {
		return "", fmt.Errorf("refresh request failed with status %d: %w", resp.status, sentinel)
	}

	var env pkgapi.Envelope
	if err := json.Unmarshal(resp.body, &env); err != nil {
		return "", fmt.Errorf("failed to decode refresh response: %w", err)
	}
	if env.Code != pkgapi.CodeSuccess {
		return "", &BusinessError{Code: env.Code, Message: env.Message}
	}

	var data pkgapi.RefreshResponse
	if env.HasData() {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return "", fmt.Errorf("failed to decode refresh data: %w", err)
		}
	}
	if data.Token == "" {
		return "", fmt.Errorf("refresh response has no token")
	}

	if err := c.store.UpdateToken(ctx, data.Token); err != nil {
		// Сервер уже выдал новый токен, используем его даже без сохранения
		c.logger.Warn("failed to persist refreshed token", "error", err)
	}
	c.logger.Debug("token refreshed")
	return data.Token, nil
}
