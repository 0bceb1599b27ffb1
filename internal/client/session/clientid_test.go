package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/hubctl/internal/client/storage"
)

func TestClientID_Stable(t *testing.T) {
	ctx := context.Background()
	s := openStorage(t, filepath.Join(t.TempDir(), "hub.db"))

	id1, err := ClientID(ctx, s)
	require.NoError(t, err)
	_, err = uuid.Parse(id1)
	require.NoError(t, err)

	id2, err := ClientID(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
}

func TestClientID_ReplacesCorruptValue(t *testing.T) {
	ctx := context.Background()
	s := openStorage(t, filepath.Join(t.TempDir(), "hub.db"))
	require.NoError(t, s.SaveMeta(ctx, storage.KeyClientID, []byte("not-a-uuid")))

	id, err := ClientID(ctx, s)
	require.NoError(t, err)
	assert.NotEqual(t, "not-a-uuid", id)

	raw, err := s.GetMeta(ctx, storage.KeyClientID)
	require.NoError(t, err)
	assert.Equal(t, id, string(raw))
}
