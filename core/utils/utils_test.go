package utils

import (
	"testing"

	"agenda-api/core/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, ComparePassword(hash, "s3cret"))
	assert.False(t, ComparePassword(hash, "wrong"))
}

func TestGenerateOwnerNumber(t *testing.T) {
	number := GenerateOwnerNumber()
	require.Len(t, number, 6)
	for _, r := range number {
		assert.True(t, r >= '0' && r <= '9', "owner number must be digits only, got %q", number)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	config.Set(&config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			ExpiryHours: 1,
			Issuer:      "agenda-api-test",
		},
	})

	principalID := uuid.New()
	token, expiresAt, err := GenerateToken(principalID, "owner")
	require.NoError(t, err)
	assert.False(t, expiresAt.IsZero())

	claims, err := ValidateAndParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, principalID, claims.PrincipalID)
	assert.Equal(t, "owner", claims.Kind)

	_, err = ValidateAndParseToken(token + "tampered")
	assert.Error(t, err)
}
