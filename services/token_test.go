package services

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/utils"
)

func TestGenerateTokenCarriesUserID(t *testing.T) {
	tokenString, err := GenerateToken("u1")
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(utils.JWTSecretKey), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "u1", claims["user_id"])
	assert.Equal(t, utils.JWTIssuer, claims["iss"])
	_, hasPurpose := claims["purpose"]
	assert.False(t, hasPurpose)
}

func TestVerificationTokenRoundTrip(t *testing.T) {
	tokenString, err := GenerateVerificationToken("u1")
	require.NoError(t, err)

	userID, err := ParseVerificationToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestParseVerificationTokenRejectsBearerToken(t *testing.T) {
	tokenString, err := GenerateToken("u1")
	require.NoError(t, err)

	_, err = ParseVerificationToken(tokenString)
	assert.Error(t, err)
}

func TestParseVerificationTokenRejectsGarbage(t *testing.T) {
	_, err := ParseVerificationToken("garbage")
	assert.Error(t, err)
}
