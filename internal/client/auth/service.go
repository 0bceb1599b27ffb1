package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/hubctl/internal/client/api"
	"github.com/iudanet/hubctl/internal/client/storage"
	"github.com/iudanet/hubctl/internal/validation"
	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

// Service предоставляет функции авторизации поверх API клиента и сессии
type Service struct {
	client  Client
	session Session
	meta    storage.MetadataStorage
}

// NewService создает новый сервис авторизации
func NewService(client Client, session Session, meta storage.MetadataStorage) *Service {
	return &Service{
		client:  client,
		session: session,
		meta:    meta,
	}
}

// Login выполняет аутентификацию и сохраняет сессию.
// При ошибке сессия не меняется.
func (s *Service) Login(ctx context.Context, username, password string) (*pkgapi.User, error) {
	// Валидация входных данных
	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	resp, err := s.client.Login(ctx, pkgapi.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("login response has no token")
	}

	if err := s.session.SetAuthInfo(ctx, resp.Token, resp.UserInfo); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	// Имя последнего входа нужно только для подсказки, ошибка не критична
	if err := s.meta.SaveMeta(ctx, storage.KeyLastLogin, []byte(username)); err != nil {
		slog.Warn("failed to remember last username", "error", err)
	}

	return resp.UserInfo, nil
}

// Logout выполняет выход из системы.
// Сервер уведомляется по возможности, локальная сессия удаляется всегда.
func (s *Service) Logout(ctx context.Context) error {
	if s.session.IsAuthenticated() {
		// Не прерываем процесс, если сервер недоступен
		if err := s.client.Logout(ctx, api.Silent()); err != nil {
			slog.Warn("failed to logout on server", "error", err)
		}
	} else {
		slog.Debug("no active session during logout")
	}

	if err := s.session.ClearAuthInfo(ctx); err != nil {
		return fmt.Errorf("failed to delete local session: %w", err)
	}
	return nil
}

// LastUsername возвращает имя последнего успешного входа или пустую строку
func (s *Service) LastUsername(ctx context.Context) string {
	raw, err := s.meta.GetMeta(ctx, storage.KeyLastLogin)
	if err != nil {
		if !errors.Is(err, storage.ErrMetaNotFound) {
			slog.Debug("failed to read last username", "error", err)
		}
		return ""
	}
	return string(raw)
}

// Register регистрирует пользователя по коду из письма. Сессию не создает.
func (s *Service) Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.RegisterResponse, error) {
	if err := validation.ValidateUsername(req.Username); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	return s.client.Register(ctx, req)
}

// RefreshProfile перечитывает профиль с сервера и обновляет сессию
func (s *Service) RefreshProfile(ctx context.Context) (*pkgapi.User, error) {
	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.session.UpdateUserInfo(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update session profile: %w", err)
	}
	return user, nil
}

// UseVIPCard применяет VIP карт-ключ и перечитывает профиль
func (s *Service) UseVIPCard(ctx context.Context, code string) (*pkgapi.User, error) {
	if err := validation.ValidateCardCode(code); err != nil {
		return nil, err
	}
	if _, err := s.client.UseVIPCard(ctx, code); err != nil {
		return nil, err
	}
	return s.RefreshProfile(ctx)
}

// ChangePassword меняет пароль текущего пользователя
func (s *Service) ChangePassword(ctx context.Context, password string) error {
	if err := validation.ValidatePassword(password); err != nil {
		return err
	}
	return s.client.ChangePassword(ctx, pkgapi.PasswordRequest{Password: password})
}
