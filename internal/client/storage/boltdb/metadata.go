package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/hubctl/internal/client/storage"
)

// SaveMeta stores value under key in metadata bucket
func (s *Storage) SaveMeta(ctx context.Context, key string, value []byte) error {
	return s.update(bucketMetadata, func(b *bbolt.Bucket) error {
		if err := b.Put([]byte(key), value); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
		return nil
	})
}

// GetMeta retrieves value by key
func (s *Storage) GetMeta(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.view(bucketMetadata, func(b *bbolt.Bucket) error {
		data := b.Get([]byte(key))
		if data == nil {
			return storage.ErrMetaNotFound
		}
		value = append([]byte(nil), data...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}
