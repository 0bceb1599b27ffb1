package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/hubctl/pkg/api"
)

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(&api.LoginRequest{Username: "admin", Password: "secret1"}))
	assert.NoError(t, Struct(&api.CardCodeRequest{CardCode: "TL|" + strings.Repeat("Z", 24)}))
	assert.NoError(t, Struct(&api.CardKeyCreateRequest{Count: 10, CardType: api.CardKeyTypeVIP, Duration: 30}))
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct(&api.LoginRequest{Username: "ab", Password: ""})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var ve *Error
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "username")
	assert.Contains(t, ve.Fields, "password")
	assert.Equal(t, "field 'password' is required", ve.Fields["password"])
	assert.Equal(t, "field 'username' must be at least 3", ve.Fields["username"])
}

func TestStruct_CardCode(t *testing.T) {
	err := Struct(&api.CardCodeRequest{CardCode: "TL|AAAA"})
	require.Error(t, err)

	var ve *Error
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields["card_code"], "TL|")
}

func TestStruct_OneOf(t *testing.T) {
	err := Struct(&api.CardKeyCreateRequest{Count: 1, CardType: 3, Duration: 1})
	require.Error(t, err)

	var ve *Error
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "field 'card_type' must be one of [1 2]", ve.Fields["card_type"])
}
