package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestMaker_RoundTrip(t *testing.T) {
	maker, err := NewMaker(testSecret, time.Hour)
	require.NoError(t, err)

	token, err := maker.Create(42, "seller")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.Verify(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "seller", claims.Role)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestMaker_ExpiredToken(t *testing.T) {
	maker, err := NewMaker(testSecret, -time.Minute)
	require.NoError(t, err)

	token, err := maker.Create(1, "user")
	require.NoError(t, err)

	_, err = maker.Verify(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestMaker_WrongSecret(t *testing.T) {
	maker, err := NewMaker(testSecret, time.Hour)
	require.NoError(t, err)
	other, err := NewMaker("ffffffffffffffffffffffffffffffff", time.Hour)
	require.NoError(t, err)

	token, err := maker.Create(7, "user")
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestMaker_GarbageToken(t *testing.T) {
	maker, err := NewMaker(testSecret, time.Hour)
	require.NoError(t, err)

	_, err = maker.Verify("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewMaker_ShortSecret(t *testing.T) {
	_, err := NewMaker("short", time.Hour)
	require.ErrorIs(t, err, ErrSecretTooShort)
}
