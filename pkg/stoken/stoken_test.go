package stoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewJWT(t *testing.T) {
	secret := []byte("someSecret")

	jwtToken, err := NewJWT("admin", AdminToken, DefaultAdminTTL, secret)
	require.NoError(t, err)

	claims, err := ValidateJWT(jwtToken, AdminToken, secret)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Subject)
	require.Equal(t, AdminToken, claims.TokenType)
	require.NotEmpty(t, claims.ID)

	remaining := Remaining(claims, time.Now())
	require.Greater(t, remaining, 23*time.Hour)
	require.LessOrEqual(t, remaining, DefaultAdminTTL)
}

func TestFailValidate(t *testing.T) {
	secret := []byte("someSecret")

	jwtToken, err := NewJWT("admin", AdminToken, time.Hour, secret)
	require.NoError(t, err)

	claims, err := ValidateJWT(jwtToken, AdminToken, []byte("wrongSecret"))
	require.ErrorIs(t, err, ErrInvalidToken)
	require.Nil(t, claims)

	_, err = ValidateJWT(jwtToken, TokenType("refresh_token"), secret)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = ValidateJWT("", AdminToken, secret)
	require.ErrorIs(t, err, ErrMissingToken)

	_, err = ValidateJWT("not.a.jwt", AdminToken, secret)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpired(t *testing.T) {
	secret := []byte("someSecret")

	jwtToken, err := newJWTAt(time.Now().Add(-25*time.Hour), "admin", AdminToken, DefaultAdminTTL, secret)
	require.NoError(t, err)

	_, err = ValidateJWT(jwtToken, AdminToken, secret)
	require.ErrorIs(t, err, ErrTokenExpired)

	require.Zero(t, Remaining(&DefaultClaims{}, time.Now()))
}
