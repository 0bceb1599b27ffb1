// Package api реализует HTTP клиент Emby Hub: конверт ответа, bearer токен,
// упреждающее обновление токена и типизированные обертки над эндпоинтами.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/iudanet/hubctl/internal/client/logging"
	"github.com/iudanet/hubctl/internal/client/token"
	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

const (
	// DefaultTimeout таймаут запроса по умолчанию
	DefaultTimeout = 30 * time.Second

	// DefaultPrefix общий префикс путей API
	DefaultPrefix = "/api"

	// HeaderClientID заголовок с идентификатором установки
	HeaderClientID = "X-Client-ID"
)

// SessionStore - часть хранилища сессии, которая нужна клиенту
type SessionStore interface {
	// Token возвращает текущий токен или пустую строку
	Token() string

	// UpdateToken сохраняет обновленный токен
	UpdateToken(ctx context.Context, token string) error

	// Expire сбрасывает сессию после 401 и возвращает true только для первого сброса
	Expire(ctx context.Context) bool
}

// Notifier показывает пользователю сообщение об ошибке
type Notifier interface {
	Error(msg string)
}

// Navigator уводит пользователя на экран входа после потери сессии
type Navigator interface {
	ToLogin()
}

type nopNotifier struct{}

func (nopNotifier) Error(string) {}

type nopNavigator struct{}

func (nopNavigator) ToLogin() {}

// Client представляет HTTP клиент для взаимодействия с backend.
// Один Client безопасен для использования из многих горутин.
type Client struct {
	httpClient       *http.Client
	store            SessionStore
	notifier         Notifier
	navigator        Navigator
	logger           *slog.Logger
	now              func() time.Time
	refreshGroup     singleflight.Group
	baseURL          string
	prefix           string
	clientID         string
	timeout          time.Duration
	refreshThreshold time.Duration
}

// NewClient создает новый API клиент
func NewClient(baseURL string, store SessionStore, opts ...Option) *Client {
	c := &Client{
		baseURL:          strings.TrimRight(baseURL, "/"),
		store:            store,
		prefix:           DefaultPrefix,
		timeout:          DefaultTimeout,
		refreshThreshold: token.RenewalThreshold,
		notifier:         nopNotifier{},
		navigator:        nopNavigator{},
		logger:           slog.Default(),
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Transport: logging.NewTransport(nil, c.logger),
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		}
	}
	// Копия, чтобы не менять http.Client вызывающего
	hc := *c.httpClient
	hc.Timeout = c.timeout
	c.httpClient = &hc

	return c
}

// BaseURL возвращает адрес backend без префикса API
func (c *Client) BaseURL() string {
	return c.baseURL
}

// response - сырой HTTP ответ
type response struct {
	body   []byte
	status int
}

// do выполняет запрос с полным циклом: обновление токена, разбор конверта,
// сопоставление статусов и уведомления. Данные конверта декодируются в result.
func (c *Client) do(
	ctx context.Context,
	method, path string,
	body, result any,
	opts ...RequestOption,
) (*pkgapi.Envelope, error) {
	rc := newRequestConfig(opts)
	values, err := rc.values()
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	tok := c.store.Token()
	if tok != "" && path != pathRefresh && token.NeedsRenewal(tok, c.now(), c.refreshThreshold) {
		tok = c.renew(ctx, tok)
	}

	req, err := c.newRequest(ctx, method, path, body, tok, values)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(req)
	if err != nil {
		// Отмена вызывающим не ошибка сети, уведомление не нужно
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, c.fail(rc, fmt.Errorf("%s %s: %w: %v", method, path, ErrNetworkUnavailable, err))
	}

	if sentinel := statusSentinel(resp.status); sentinel != nil {
		statusErr := &StatusError{
			Err:        sentinel,
			Method:     method,
			Path:       path,
			StatusCode: resp.status,
			Message:    envelopeMessage(resp.body),
		}
		if errors.Is(sentinel, ErrAuthExpired) {
			c.expire(ctx, path)
		}
		return nil, c.fail(rc, statusErr)
	}

	var env pkgapi.Envelope
	if err := json.Unmarshal(resp.body, &env); err != nil {
		return nil, c.fail(rc, fmt.Errorf("%s %s: %w: %v", method, path, ErrMalformedResponse, err))
	}
	if env.Code != pkgapi.CodeSuccess {
		bizErr := &BusinessError{Code: env.Code, Message: env.Message}
		// Backend сообщает о просроченном токене конвертом 401 при HTTP 200.
		// Вход без токена (неверный пароль) сессию не трогает.
		if env.Code == http.StatusUnauthorized && tok != "" && path != pathLogin {
			bizErr.Err = ErrAuthExpired
			c.expire(ctx, path)
		}
		return &env, c.fail(rc, bizErr)
	}

	if result != nil && env.HasData() {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return &env, c.fail(rc, fmt.Errorf("%s %s: %w: %v", method, path, ErrMalformedResponse, err))
		}
	}
	return &env, nil
}

// expire сбрасывает сессию; на экран входа ведет только первый сброс
func (c *Client) expire(ctx context.Context, path string) {
	if c.store.Expire(ctx) {
		c.logger.Info("session expired, redirecting to login", "path", path)
		c.navigator.ToLogin()
	}
}

// fail показывает уведомление (если запрос не тихий) и возвращает ошибку
func (c *Client) fail(rc requestConfig, err error) error {
	if !rc.silent {
		c.notifier.Error(notificationText(err))
	}
	return err
}

// newRequest собирает HTTP запрос: URL с префиксом, JSON тело, заголовки
func (c *Client) newRequest(
	ctx context.Context,
	method, path string,
	body any,
	tok string,
	values url.Values,
) (*http.Request, error) {
	target := c.baseURL + c.prefix + path
	if len(values) > 0 {
		target += "?" + values.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	if c.clientID != "" {
		req.Header.Set(HeaderClientID, c.clientID)
	}
	return req, nil
}

// send выполняет один HTTP обмен без обработки статусов.
// Ошибка возвращается только если ответ не получен. Обмен логирует logging.Transport.
func (c *Client) send(req *http.Request) (*response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &response{status: resp.StatusCode, body: respBody}, nil
}

// envelopeMessage достает message из тела ошибки, если оно похоже на конверт
func envelopeMessage(body []byte) string {
	var env pkgapi.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return env.Message
}
