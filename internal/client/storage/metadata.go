package storage

import "context"

// Metadata keys
const (
	KeyClientID  = "client_id"
	KeySealSalt  = "seal_salt"
	KeyLastLogin = "last_login"
)

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client metadata
// (installation ID, sealing salt, etc.)
type MetadataStorage interface {
	// SaveMeta stores value under key
	SaveMeta(ctx context.Context, key string, value []byte) error

	// GetMeta retrieves value by key
	// Returns ErrMetaNotFound if key doesn't exist
	GetMeta(ctx context.Context, key string) ([]byte, error)
}
