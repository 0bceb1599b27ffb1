package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/hubctl/internal/client/storage"
	"github.com/iudanet/hubctl/internal/crypto"
)

// ErrUnsealFailed сохраненный токен не расшифровывается текущим ключом
var ErrUnsealFailed = errors.New("failed to unseal stored token")

// SealedStorage шифрует токен перед записью во вложенное хранилище.
// Профиль хранится открыто: в нем нет секретов.
type SealedStorage struct {
	storage.SessionStorage
	key []byte
}

var _ storage.SessionStorage = (*SealedStorage)(nil)

// NewSealedStorage выводит ключ из passphrase и соли установки.
// Соль создается при первом вызове и сохраняется в метаданных.
func NewSealedStorage(
	ctx context.Context,
	inner storage.SessionStorage,
	meta storage.MetadataStorage,
	passphrase string,
) (*SealedStorage, error) {
	salt, err := meta.GetMeta(ctx, storage.KeySealSalt)
	if errors.Is(err, storage.ErrMetaNotFound) {
		salt, err = crypto.GenerateSalt()
		if err != nil {
			return nil, err
		}
		if err := meta.SaveMeta(ctx, storage.KeySealSalt, salt); err != nil {
			return nil, fmt.Errorf("failed to save seal salt: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to read seal salt: %w", err)
	}

	key, err := crypto.DeriveSessionKey(passphrase, salt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive session key: %w", err)
	}

	return &SealedStorage{SessionStorage: inner, key: key}, nil
}

func (s *SealedStorage) SaveSession(ctx context.Context, token string, userInfo []byte) error {
	sealed, err := crypto.Seal([]byte(token), s.key)
	if err != nil {
		return fmt.Errorf("failed to seal token: %w", err)
	}
	return s.SessionStorage.SaveSession(ctx, sealed, userInfo)
}

func (s *SealedStorage) SaveToken(ctx context.Context, token string) error {
	sealed, err := crypto.Seal([]byte(token), s.key)
	if err != nil {
		return fmt.Errorf("failed to seal token: %w", err)
	}
	return s.SessionStorage.SaveToken(ctx, sealed)
}

func (s *SealedStorage) GetToken(ctx context.Context) (string, error) {
	sealed, err := s.SessionStorage.GetToken(ctx)
	if err != nil {
		return "", err
	}
	plain, err := crypto.Open(sealed, s.key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsealFailed, err)
	}
	return string(plain), nil
}
