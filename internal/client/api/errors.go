package api

import (
	"errors"
	"fmt"
)

// Ошибки транспортного уровня. Текст каждой ошибки показывается пользователю как уведомление.
var (
	// ErrAuthExpired HTTP 401: сессия сброшена, нужен повторный вход
	ErrAuthExpired = errors.New("unauthorized, please log in again")

	// ErrPermissionDenied HTTP 403
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound HTTP 404
	ErrNotFound = errors.New("requested resource does not exist")

	// ErrServerError HTTP 500 и прочие 5xx
	ErrServerError = errors.New("server error")

	// ErrNetworkUnavailable ответ не получен: отказ соединения, таймаут, обрыв
	ErrNetworkUnavailable = errors.New("network connection failed, check your network")

	// ErrUnexpectedStatus любой другой статус вне 2xx
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrMalformedResponse тело ответа не является конвертом API
	ErrMalformedResponse = errors.New("server returned an invalid response")
)

// BusinessError конверт с code != 200. Message - текст от сервера.
// Для конверта 401 на запросе с токеном Err равен ErrAuthExpired.
type BusinessError struct {
	Err     error
	Message string
	Code    int
}

func (e *BusinessError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with code %d", e.Code)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// StatusError транспортная ошибка с HTTP статусом.
// Unwrap возвращает одну из sentinel ошибок выше.
type StatusError struct {
	Err        error
	Method     string
	Path       string
	Message    string // текст из тела ответа, если сервер его прислал
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %v", e.Method, e.Path, e.StatusCode, e.Err)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// statusSentinel сопоставляет HTTP статус ошибке таксономии, nil для 2xx
func statusSentinel(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == 401:
		return ErrAuthExpired
	case status == 403:
		return ErrPermissionDenied
	case status == 404:
		return ErrNotFound
	case status >= 500:
		return ErrServerError
	default:
		return ErrUnexpectedStatus
	}
}

// notificationText возвращает текст уведомления для ошибки
func notificationText(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Error()
	}
	var se *StatusError
	if errors.As(err, &se) {
		if errors.Is(se.Err, ErrUnexpectedStatus) {
			return fmt.Sprintf("request failed with status %d", se.StatusCode)
		}
		return se.Err.Error()
	}
	for _, sentinel := range []error{ErrNetworkUnavailable, ErrMalformedResponse} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
