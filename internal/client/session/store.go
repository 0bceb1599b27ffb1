// Package session хранит токен и профиль текущего пользователя.
// Store создается явно и передается зависимостям, глобального состояния нет.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/iudanet/hubctl/internal/client/storage"
	"github.com/iudanet/hubctl/pkg/api"
)

// Store держит состояние сессии в памяти и зеркалирует его в SessionStorage.
// Безопасен для конкурентного использования.
type Store struct {
	storage  storage.SessionStorage
	userInfo *api.User
	token    string
	mu       sync.RWMutex
	// expired взводится первым Expire и сбрасывается SetAuthInfo
	expired bool
}

// New создает пустой Store поверх хранилища. Для загрузки сохраненной сессии вызовите Restore.
func New(s storage.SessionStorage) *Store {
	return &Store{storage: s}
}

// Restore загружает сохраненные токен и профиль.
// Поврежденный профиль считается отсутствующим, токен при этом сохраняется.
func (s *Store) Restore(ctx context.Context) error {
	token, err := s.storage.GetToken(ctx)
	switch {
	case errors.Is(err, storage.ErrSessionNotFound):
		token = ""
	case errors.Is(err, ErrUnsealFailed):
		// токен запечатан другой парольной фразой, восстановить его нельзя
		slog.Warn("stored token cannot be unsealed, session dropped", "error", err)
		if delErr := s.storage.DeleteSession(ctx); delErr != nil {
			return fmt.Errorf("failed to drop unreadable session: %w", delErr)
		}
		token = ""
	case err != nil:
		return fmt.Errorf("failed to read token: %w", err)
	}

	var user *api.User
	raw, err := s.storage.GetUserInfo(ctx)
	switch {
	case errors.Is(err, storage.ErrSessionNotFound), err == nil && string(raw) == "null":
	case err != nil:
		return fmt.Errorf("failed to read user info: %w", err)
	default:
		var u api.User
		if jsonErr := json.Unmarshal(raw, &u); jsonErr != nil {
			slog.Warn("stored user info is corrupt, ignoring", "error", jsonErr)
		} else {
			user = &u
		}
	}

	s.mu.Lock()
	s.token = token
	s.userInfo = user
	s.mu.Unlock()
	return nil
}

// SetAuthInfo сохраняет токен и профиль после успешного входа
func (s *Store) SetAuthInfo(ctx context.Context, token string, user *api.User) error {
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	raw, err := marshalUser(user)
	if err != nil {
		return err
	}
	if err := s.storage.SaveSession(ctx, token, raw); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.userInfo = cloneUser(user)
	s.expired = false
	s.mu.Unlock()
	return nil
}

// ClearAuthInfo удаляет токен и профиль. Очистка пустой сессии не ошибка.
// Состояние в памяти очищается даже если хранилище вернуло ошибку.
func (s *Store) ClearAuthInfo(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.userInfo = nil
	s.mu.Unlock()

	if err := s.storage.DeleteSession(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// UpdateUserInfo заменяет кэшированный профиль, токен не трогает
func (s *Store) UpdateUserInfo(ctx context.Context, user *api.User) error {
	raw, err := marshalUser(user)
	if err != nil {
		return err
	}
	if err := s.storage.SaveUserInfo(ctx, raw); err != nil {
		return fmt.Errorf("failed to persist user info: %w", err)
	}

	s.mu.Lock()
	s.userInfo = cloneUser(user)
	s.mu.Unlock()
	return nil
}

// UpdateToken заменяет токен после обновления, профиль не трогает.
// После Expire обновление, завершившееся позже сброса, игнорируется до следующего SetAuthInfo.
func (s *Store) UpdateToken(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	// Блокировка на время записи, иначе Expire может проскочить между проверкой и сохранением
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.expired {
		slog.Debug("session expired, refreshed token dropped")
		return nil
	}
	if err := s.storage.SaveToken(ctx, token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	s.token = token
	return nil
}

// Expire очищает сессию после 401 и сообщает, первый ли это сброс
// с момента последнего SetAuthInfo. Только первый вызов должен вести на вход.
func (s *Store) Expire(ctx context.Context) bool {
	s.mu.Lock()
	first := !s.expired
	s.expired = true
	s.token = ""
	s.userInfo = nil
	s.mu.Unlock()

	if err := s.storage.DeleteSession(ctx); err != nil {
		slog.Warn("failed to delete expired session", "error", err)
	}
	return first
}

// Token возвращает текущий токен или пустую строку
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// UserInfo возвращает копию профиля или nil
func (s *Store) UserInfo() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUser(s.userInfo)
}

// IsAuthenticated сообщает, есть ли токен
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

func marshalUser(user *api.User) ([]byte, error) {
	if user == nil {
		return []byte("null"), nil
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user info: %w", err)
	}
	return raw, nil
}

func cloneUser(u *api.User) *api.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
