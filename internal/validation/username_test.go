package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCardCode(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{name: "valid - 24 letters", code: "TL|" + strings.Repeat("A", 24)},
		{name: "valid - letters and digits", code: "TL|ABCDEFGHIJKL0123456789XY"},
		{name: "invalid - too short", code: "TL|AAAA", wantErr: true},
		{name: "invalid - lowercase prefix", code: "tl|" + strings.Repeat("A", 24), wantErr: true},
		{name: "invalid - lowercase body", code: "TL|" + strings.Repeat("a", 24), wantErr: true},
		{name: "invalid - too long", code: "TL|" + strings.Repeat("A", 25), wantErr: true},
		{name: "invalid - missing separator", code: "TL" + strings.Repeat("A", 24), wantErr: true},
		{name: "invalid - empty", code: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCardCode(tt.code)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		errMsg   string
		wantErr  bool
	}{
		{name: "valid username", username: "alice"},
		{name: "valid - min length", username: "abc"},
		{name: "valid - max length", username: strings.Repeat("a", 50)},
		{name: "valid - unicode", username: "管理员甲"},
		{name: "invalid - empty", username: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "invalid - too short", username: "ab", wantErr: true, errMsg: "at least 3 characters"},
		{name: "invalid - too long", username: strings.Repeat("a", 51), wantErr: true, errMsg: "must not exceed 50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		errMsg   string
		wantErr  bool
	}{
		{name: "valid password", password: "secret1"},
		{name: "valid - min length", password: "123456"},
		{name: "invalid - empty", password: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "invalid - too short", password: "12345", wantErr: true, errMsg: "at least 6 characters"},
		{name: "invalid - too long", password: strings.Repeat("x", 51), wantErr: true, errMsg: "must not exceed 50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}
