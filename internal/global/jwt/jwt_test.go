package jwt

import (
	"testing"

	"campus-connect/config"

	"github.com/stretchr/testify/require"
)

func setup() {
	config.Init()
	cfg := config.Get()
	if cfg.JWT.AccessSecret == "" {
		cfg.JWT.AccessSecret = "test-secret"
	}
}

func TestTokenRoundTrip(t *testing.T) {
	setup()

	token := CreateToken(Payload{UserID: 7, Email: "alice@example.com"})
	require.NotEmpty(t, token)

	claims, ok := ParseToken(token)
	require.True(t, ok)
	require.EqualValues(t, 7, claims.UserID)
	require.Equal(t, "alice@example.com", claims.Email)
}

func TestParseInvalidToken(t *testing.T) {
	setup()

	_, ok := ParseToken("not-a-token")
	require.False(t, ok)

	token := CreateToken(Payload{UserID: 7})
	_, ok = ParseToken(token + "tampered")
	require.False(t, ok)
}
