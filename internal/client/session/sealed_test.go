package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/hubctl/internal/client/storage"
)

func TestSealedStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "hub.db")
	raw := openStorage(t, path)

	sealed, err := NewSealedStorage(ctx, raw, raw, "passphrase")
	require.NoError(t, err)

	store := New(sealed)
	require.NoError(t, store.SetAuthInfo(ctx, "secret-token", testUser()))

	// В bbolt лежит не открытый токен
	onDisk, err := raw.GetToken(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, "secret-token", onDisk)

	// Та же соль и та же фраза дают тот же ключ
	reopened, err := NewSealedStorage(ctx, raw, raw, "passphrase")
	require.NoError(t, err)
	restored := New(reopened)
	require.NoError(t, restored.Restore(ctx))
	assert.Equal(t, "secret-token", restored.Token())

	require.NoError(t, restored.UpdateToken(ctx, "renewed"))
	got, err := reopened.GetToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "renewed", got)
}

func TestSealedStorage_WrongPassphraseDropsSession(t *testing.T) {
	ctx := context.Background()
	raw := openStorage(t, filepath.Join(t.TempDir(), "hub.db"))

	sealed, err := NewSealedStorage(ctx, raw, raw, "right")
	require.NoError(t, err)
	require.NoError(t, New(sealed).SetAuthInfo(ctx, "secret-token", testUser()))

	wrong, err := NewSealedStorage(ctx, raw, raw, "wrong")
	require.NoError(t, err)

	_, err = wrong.GetToken(ctx)
	assert.ErrorIs(t, err, ErrUnsealFailed)

	store := New(wrong)
	require.NoError(t, store.Restore(ctx))
	assert.False(t, store.IsAuthenticated())

	_, err = raw.GetToken(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

func TestNewSealedStorage_EmptyPassphrase(t *testing.T) {
	raw := openStorage(t, filepath.Join(t.TempDir(), "hub.db"))
	_, err := NewSealedStorage(context.Background(), raw, raw, "")
	assert.Error(t, err)
}
