package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/hubctl/internal/client/storage"
)

var (
	keyToken    = []byte(storage.KeyToken)
	keyUserInfo = []byte(storage.KeyUserInfo)
)

// SaveSession stores token and profile atomically
func (s *Storage) SaveSession(ctx context.Context, token string, userInfo []byte) error {
	return s.update(bucketSession, func(b *bbolt.Bucket) error {
		if err := b.Put(keyToken, []byte(token)); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}
		if err := b.Put(keyUserInfo, userInfo); err != nil {
			return fmt.Errorf("failed to save user info: %w", err)
		}
		return nil
	})
}

// SaveToken replaces stored token
func (s *Storage) SaveToken(ctx context.Context, token string) error {
	return s.update(bucketSession, func(b *bbolt.Bucket) error {
		if err := b.Put(keyToken, []byte(token)); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}
		return nil
	})
}

// SaveUserInfo replaces stored profile
func (s *Storage) SaveUserInfo(ctx context.Context, userInfo []byte) error {
	return s.update(bucketSession, func(b *bbolt.Bucket) error {
		if err := b.Put(keyUserInfo, userInfo); err != nil {
			return fmt.Errorf("failed to save user info: %w", err)
		}
		return nil
	})
}

// GetToken returns stored token
func (s *Storage) GetToken(ctx context.Context) (string, error) {
	var token string
	err := s.view(bucketSession, func(b *bbolt.Bucket) error {
		data := b.Get(keyToken)
		if len(data) == 0 {
			return storage.ErrSessionNotFound
		}
		token = string(data)
		return nil
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// GetUserInfo returns stored profile bytes
func (s *Storage) GetUserInfo(ctx context.Context) ([]byte, error) {
	var userInfo []byte
	err := s.view(bucketSession, func(b *bbolt.Bucket) error {
		data := b.Get(keyUserInfo)
		if data == nil {
			return storage.ErrSessionNotFound
		}
		// Значение валидно только внутри транзакции - копируем
		userInfo = append([]byte(nil), data...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return userInfo, nil
}

// DeleteSession removes token and profile (logout)
func (s *Storage) DeleteSession(ctx context.Context) error {
	return s.update(bucketSession, func(b *bbolt.Bucket) error {
		// Delete отсутствующего ключа в bbolt не является ошибкой
		if err := b.Delete(keyToken); err != nil {
			return fmt.Errorf("failed to delete token: %w", err)
		}
		if err := b.Delete(keyUserInfo); err != nil {
			return fmt.Errorf("failed to delete user info: %w", err)
		}
		return nil
	})
}
