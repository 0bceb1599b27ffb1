package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/iudanet/hubctl/internal/client/storage"
)

// ClientID возвращает идентификатор установки или создает новый.
// Идентификатор уникален для каждой копии локальной базы.
func ClientID(ctx context.Context, meta storage.MetadataStorage) (string, error) {
	raw, err := meta.GetMeta(ctx, storage.KeyClientID)
	if err == nil {
		if id, parseErr := uuid.ParseBytes(raw); parseErr == nil {
			return id.String(), nil
		}
		// битое значение перезаписываем новым
	} else if !errors.Is(err, storage.ErrMetaNotFound) {
		return "", fmt.Errorf("failed to read client id: %w", err)
	}

	id := uuid.New().String()
	if err := meta.SaveMeta(ctx, storage.KeyClientID, []byte(id)); err != nil {
		return "", fmt.Errorf("failed to save client id: %w", err)
	}
	return id, nil
}
