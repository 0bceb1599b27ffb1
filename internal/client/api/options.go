package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-querystring/query"
)

// Option настраивает Client
type Option func(*Client)

// WithTimeout задает таймаут одного запроса (по умолчанию 30s)
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient подменяет http.Client. Таймаут все равно берется из WithTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithPrefix задает общий префикс путей API (по умолчанию /api)
func WithPrefix(prefix string) Option {
	return func(c *Client) {
		c.prefix = prefix
	}
}

// WithNotifier задает получателя пользовательских уведомлений об ошибках
func WithNotifier(n Notifier) Option {
	return func(c *Client) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithNavigator задает реакцию на принудительный выход после 401
func WithNavigator(n Navigator) Option {
	return func(c *Client) {
		if n != nil {
			c.navigator = n
		}
	}
}

// WithLogger задает логгер запросов
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClientID задает значение заголовка X-Client-ID
func WithClientID(id string) Option {
	return func(c *Client) {
		c.clientID = id
	}
}

// WithRefreshThreshold задает порог упреждающего обновления токена
func WithRefreshThreshold(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.refreshThreshold = d
		}
	}
}

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// RequestOption настраивает отдельный запрос
type RequestOption func(*requestConfig)

type requestConfig struct {
	query  any
	silent bool
}

// Silent отключает уведомления об ошибках этого запроса
func Silent() RequestOption {
	return func(rc *requestConfig) {
		rc.silent = true
	}
}

// Query добавляет параметры запроса из структуры с тегами url
func Query(v any) RequestOption {
	return func(rc *requestConfig) {
		rc.query = v
	}
}

func newRequestConfig(opts []RequestOption) requestConfig {
	var rc requestConfig
	for _, opt := range opts {
		opt(&rc)
	}
	return rc
}

func (rc requestConfig) values() (url.Values, error) {
	if rc.query == nil {
		return nil, nil
	}
	return query.Values(rc.query)
}
