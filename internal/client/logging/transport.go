package logging

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// sensitiveParams параметры запроса, значения которых не попадают в журнал
var sensitiveParams = []string{"api_key", "token", "password", "license"}

// Transport логирует каждый HTTP запрос клиента: метод, путь, статус, длительность.
// Заголовки и тела не логируются: в них токены и пароли.
type Transport struct {
	next   http.RoundTripper
	logger *slog.Logger
}

// NewTransport оборачивает next. nil next - http.DefaultTransport.
func NewTransport(next http.RoundTripper, logger *slog.Logger) *Transport {
	if next == nil {
		next = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Transport{next: next, logger: logger}
}

// RoundTrip implements http.RoundTripper
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.logger.Log(req.Context(), slog.LevelDebug, "HTTP request failed",
			"method", req.Method,
			"url", sanitizeURL(req.URL),
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
		return nil, err
	}

	// Уровень зависит от статуса
	level := slog.LevelDebug
	if resp.StatusCode >= 500 {
		level = slog.LevelError
	} else if resp.StatusCode >= 400 {
		level = slog.LevelInfo
	}

	t.logger.Log(req.Context(), level, "HTTP request",
		"method", req.Method,
		"url", sanitizeURL(req.URL),
		"status", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
		"content_length", resp.ContentLength,
	)
	return resp, nil
}

// sanitizeURL скрывает значения чувствительных параметров запроса
func sanitizeURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	if u.RawQuery == "" {
		return u.Path
	}

	q := u.Query()
	for key := range q {
		for _, s := range sensitiveParams {
			if strings.EqualFold(key, s) {
				q.Set(key, "***")
			}
		}
	}
	return u.Path + "?" + q.Encode()
}
