package storage

import "errors"

// Common client storage errors
var (
	// ErrSessionNotFound indicates that no persisted session value exists
	ErrSessionNotFound = errors.New("session data not found")

	// ErrMetaNotFound indicates that metadata key is absent
	ErrMetaNotFound = errors.New("metadata not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
