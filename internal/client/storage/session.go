package storage

import (
	"context"
)

// Fixed names of the two persisted session values
const (
	KeyToken    = "token"
	KeyUserInfo = "userInfo"
)

//go:generate moq -out session_mock.go . SessionStorage

// SessionStorage defines interface for persisting session state on client.
// This is the lowest storage layer - it works with raw values and
// doesn't know anything about tokens or profiles.
type SessionStorage interface {
	// SaveSession stores token and serialized profile in one transaction
	SaveSession(ctx context.Context, token string, userInfo []byte) error

	// SaveToken replaces stored token, profile is kept
	SaveToken(ctx context.Context, token string) error

	// SaveUserInfo replaces stored profile, token is kept
	SaveUserInfo(ctx context.Context, userInfo []byte) error

	// GetToken returns stored token
	// Returns ErrSessionNotFound if no token exists
	GetToken(ctx context.Context) (string, error)

	// GetUserInfo returns stored serialized profile
	// Returns ErrSessionNotFound if no profile exists
	GetUserInfo(ctx context.Context) ([]byte, error)

	// DeleteSession removes token and profile together.
	// Deleting an absent session is not an error.
	DeleteSession(ctx context.Context) error
}
