package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 42, "DRIVER", 5)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)

	claims, err := ParseAccessToken(testSecret, tok.Token)
	require.NoError(t, err)
	require.Equal(t, uint64(42), claims.UserID())
	require.Equal(t, "DRIVER", claims.Role)
}

func TestParseAccessTokenRejects(t *testing.T) {
	t.Run("wrong secret", func(t *testing.T) {
		tok, err := NewAccessToken(testSecret, 42, "CUSTOMER", 5)
		require.NoError(t, err)
		_, err = ParseAccessToken("another-secret", tok.Token)
		require.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		tok, err := NewAccessToken(testSecret, 42, "CUSTOMER", -5)
		require.NoError(t, err)
		_, err = ParseAccessToken(testSecret, tok.Token)
		require.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseAccessToken(testSecret, "not.a.token")
		require.Error(t, err)
	})
}

func TestHashPasswordClampsCost(t *testing.T) {
	// costs outside bcrypt's range fall back instead of erroring
	hash, err := HashPassword("s3cret", 0)
	require.NoError(t, err)
	require.True(t, VerifyPassword(hash, "s3cret"))
	require.False(t, VerifyPassword(hash, "wrong"))
}
