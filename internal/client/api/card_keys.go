package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iudanet/hubctl/internal/validation"
	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

// ListCardKeys возвращает страницу карт-ключей
func (c *Client) ListCardKeys(
	ctx context.Context,
	params pkgapi.CardKeyListParams,
) (*pkgapi.PageResponse[pkgapi.CardKey], error) {
	var page pkgapi.PageResponse[pkgapi.CardKey]
	if _, err := c.do(ctx, http.MethodGet, "/card-keys", nil, &page, Query(params)); err != nil {
		return nil, fmt.Errorf("list card keys request failed: %w", err)
	}
	return &page, nil
}

// CreateCardKeys генерирует пачку карт-ключей
func (c *Client) CreateCardKeys(ctx context.Context, req pkgapi.CardKeyCreateRequest) ([]pkgapi.CardKey, error) {
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	var keys []pkgapi.CardKey
	if _, err := c.do(ctx, http.MethodPost, "/card-keys", req, &keys); err != nil {
		return nil, fmt.Errorf("create card keys request failed: %w", err)
	}
	return keys, nil
}

// GetCardKey возвращает карт-ключ по ID
func (c *Client) GetCardKey(ctx context.Context, id int) (*pkgapi.CardKey, error) {
	var key pkgapi.CardKey
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/card-keys/%d", id), nil, &key); err != nil {
		return nil, fmt.Errorf("get card key request failed: %w", err)
	}
	return &key, nil
}

// DisableCardKey отключает карт-ключ
func (c *Client) DisableCardKey(ctx context.Context, id int) error {
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/card-keys/%d/disable", id), nil, nil); err != nil {
		return fmt.Errorf("disable card key request failed: %w", err)
	}
	return nil
}

// EnableCardKey включает карт-ключ
func (c *Client) EnableCardKey(ctx context.Context, id int) error {
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/card-keys/%d/enable", id), nil, nil); err != nil {
		return fmt.Errorf("enable card key request failed: %w", err)
	}
	return nil
}

// DeleteCardKey удаляет карт-ключ
func (c *Client) DeleteCardKey(ctx context.Context, id int) error {
	if _, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/card-keys/%d", id), nil, nil); err != nil {
		return fmt.Errorf("delete card key request failed: %w", err)
	}
	return nil
}

// CardKeyStatistics возвращает сводку по карт-ключам
func (c *Client) CardKeyStatistics(ctx context.Context) (*pkgapi.CardKeyStatistics, error) {
	var stats pkgapi.CardKeyStatistics
	if _, err := c.do(ctx, http.MethodGet, "/card-keys/statistics", nil, &stats); err != nil {
		return nil, fmt.Errorf("card key statistics request failed: %w", err)
	}
	return &stats, nil
}

// ValidateCardKey проверяет код на сервере. Формат проверяется до отправки.
func (c *Client) ValidateCardKey(ctx context.Context, code string) (*pkgapi.CardKeyValidation, error) {
	req := pkgapi.CardCodeRequest{CardCode: code}
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	var res pkgapi.CardKeyValidation
	if _, err := c.do(ctx, http.MethodPost, "/card-keys/validate", req, &res); err != nil {
		return nil, fmt.Errorf("validate card key request failed: %w", err)
	}
	return &res, nil
}

// UseVIPCard применяет VIP карт-ключ к текущему пользователю
func (c *Client) UseVIPCard(ctx context.Context, code string) (*pkgapi.VIPUpgradeResult, error) {
	req := pkgapi.CardCodeRequest{CardCode: code}
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	var res pkgapi.VIPUpgradeResult
	if _, err := c.do(ctx, http.MethodPost, "/card-keys/use-vip", req, &res); err != nil {
		return nil, fmt.Errorf("use vip card request failed: %w", err)
	}
	return &res, nil
}
