package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mint(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "1"}
	if !exp.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(exp)
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestExpiresAt(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	got, err := ExpiresAt(mint(t, exp))
	require.NoError(t, err)
	assert.True(t, exp.Equal(got))
}

func TestExpiresAt_Errors(t *testing.T) {
	_, err := ExpiresAt("")
	assert.Error(t, err)

	_, err = ExpiresAt("not.a.jwt")
	assert.Error(t, err)

	_, err = ExpiresAt(mint(t, time.Time{}))
	assert.ErrorIs(t, err, ErrNoExpiry)
}

func TestNeedsRenewal(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{name: "fresh token", token: mint(t, now.Add(2*time.Hour)), want: false},
		{name: "expires in 10 minutes", token: mint(t, now.Add(10*time.Minute)), want: true},
		{name: "expires in 29 minutes", token: mint(t, now.Add(29*time.Minute)), want: true},
		{name: "already expired", token: mint(t, now.Add(-time.Minute)), want: false},
		{name: "no exp claim", token: mint(t, time.Time{}), want: false},
		{name: "garbage", token: "garbage", want: false},
		{name: "empty", token: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsRenewal(tt.token, now, RenewalThreshold))
		})
	}
}
