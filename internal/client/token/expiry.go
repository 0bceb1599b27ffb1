// Package token декодирует срок действия JWT без проверки подписи.
// Подпись проверяет только backend, клиенту нужен лишь claim exp.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RenewalThreshold - за сколько до истечения токен считается "почти истекшим"
const RenewalThreshold = 30 * time.Minute

// ErrNoExpiry токен не содержит claim exp
var ErrNoExpiry = errors.New("token has no exp claim")

// ExpiresAt возвращает момент истечения токена из claim exp
func ExpiresAt(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty token")
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}

// NeedsRenewal сообщает, что токен еще действует, но истечет раньше чем через threshold.
// Нераскодированный или уже истекший токен не обновляется: такой случай разрешает 401 от сервера.
func NeedsRenewal(raw string, now time.Time, threshold time.Duration) bool {
	exp, err := ExpiresAt(raw)
	if err != nil {
		return false
	}
	if !exp.After(now) {
		return false
	}
	return exp.Sub(now) < threshold
}
