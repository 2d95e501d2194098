package helper

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asistenciapp_backend/internals/configs"
)

func TestCreateAndParseAccessToken(t *testing.T) {
	configs.JWTSecret = "secreto-de-prueba"

	userID := uuid.New()
	token, err := CreateAccessToken(userID, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, userID.String(), claims["id"])
	assert.Equal(t, "admin", claims["role"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok, "exp debe venir como número")
	expected := time.Now().Add(AccessTokenTTL).Unix()
	assert.InDelta(t, expected, int64(exp), 5, "el token debe expirar en ~2 horas")
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	configs.JWTSecret = "secreto-de-prueba"
	token, err := CreateAccessToken(uuid.New(), "user")
	require.NoError(t, err)

	configs.JWTSecret = "otro-secreto"
	_, err = ParseAccessToken(token)
	assert.Error(t, err)
}

func TestParseAccessTokenGarbage(t *testing.T) {
	configs.JWTSecret = "secreto-de-prueba"
	_, err := ParseAccessToken("no.es.un.token")
	assert.Error(t, err)
}
