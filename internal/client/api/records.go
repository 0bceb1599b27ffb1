package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/iudanet/hubctl/internal/validation"
	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

// ListAccessRecords возвращает страницу журнала доступа
func (c *Client) ListAccessRecords(
	ctx context.Context,
	q pkgapi.AccessRecordQuery,
) (*pkgapi.PageResponse[pkgapi.AccessRecord], error) {
	var page pkgapi.PageResponse[pkgapi.AccessRecord]
	if _, err := c.do(ctx, http.MethodGet, "/access-records", nil, &page, Query(q)); err != nil {
		return nil, fmt.Errorf("list access records request failed: %w", err)
	}
	return &page, nil
}

// CreateAccessRecord пишет запись в журнал доступа
func (c *Client) CreateAccessRecord(
	ctx context.Context,
	req pkgapi.AccessRecordCreateRequest,
	opts ...RequestOption,
) error {
	if err := validation.Struct(&req); err != nil {
		return err
	}
	if _, err := c.do(ctx, http.MethodPost, "/access-records", req, nil, opts...); err != nil {
		return fmt.Errorf("create access record request failed: %w", err)
	}
	return nil
}

// ListConfigs возвращает системные настройки
func (c *Client) ListConfigs(ctx context.Context) ([]pkgapi.SystemConfig, error) {
	var configs []pkgapi.SystemConfig
	if _, err := c.do(ctx, http.MethodGet, "/configs", nil, &configs); err != nil {
		return nil, fmt.Errorf("list configs request failed: %w", err)
	}
	return configs, nil
}

// UpdateConfig задает значение настройки
func (c *Client) UpdateConfig(ctx context.Context, key, value string) error {
	if key == "" {
		return &validation.Error{Fields: map[string]string{"config_key": "field 'config_key' is required"}}
	}
	req := pkgapi.UpdateConfigRequest{ConfigValue: value}
	if _, err := c.do(ctx, http.MethodPut, "/configs/"+url.PathEscape(key), req, nil); err != nil {
		return fmt.Errorf("update config request failed: %w", err)
	}
	return nil
}

// Statistics возвращает агрегаты для дашборда
func (c *Client) Statistics(ctx context.Context) (*pkgapi.Statistics, error) {
	var stats pkgapi.Statistics
	if _, err := c.do(ctx, http.MethodGet, "/statistics", nil, &stats); err != nil {
		return nil, fmt.Errorf("statistics request failed: %w", err)
	}
	return &stats, nil
}
