package crypto

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpen(t *testing.T) {
	key := make([]byte, KeyLen)
	_, _ = rand.Read(key)

	sealed, err := Seal([]byte("eyJhbGciOiJIUzI1NiJ9.payload.sig"), key)
	require.NoError(t, err)
	assert.NotContains(t, sealed, "payload")

	plain, err := Open(sealed, key)
	require.NoError(t, err)
	assert.Equal(t, "eyJhbGciOiJIUzI1NiJ9.payload.sig", string(plain))
}

func TestSeal_Errors(t *testing.T) {
	tests := []struct {
		name      string
		errMsg    string
		plaintext []byte
		key       []byte
	}{
		{name: "empty plaintext", plaintext: []byte{}, key: make([]byte, KeyLen), errMsg: "plaintext cannot be empty"},
		{name: "short key", plaintext: []byte("x"), key: make([]byte, 16), errMsg: "encryption key must be 32 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Seal(tt.plaintext, tt.key)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestOpen_WrongKey(t *testing.T) {
	key := make([]byte, KeyLen)
	other := make([]byte, KeyLen)
	other[0] = 1

	sealed, err := Seal([]byte("secret"), key)
	require.NoError(t, err)

	_, err = Open(sealed, other)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")
}

func TestOpen_Malformed(t *testing.T) {
	key := make([]byte, KeyLen)

	_, err := Open("%%%not-base64", key)
	assert.Error(t, err)

	_, err = Open("AAAA", key)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
}
