package services

import (
	"errors"
	"time"

	"main/utils"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken issues the bearer token returned by register/login.
func GenerateToken(userID string) (string, error) {
	expirationTime := time.Now().Add(time.Duration(utils.JWTExpirationTime) * time.Second)

	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     expirationTime.Unix(),
		"iat":     time.Now().Unix(),
		"iss":     utils.JWTIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}

// GenerateVerificationToken issues the short-lived token embedded in the
// email verification link.
func GenerateVerificationToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"purpose": "verify",
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
		"iss":     utils.JWTIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}

// ParseVerificationToken returns the user id carried by a verification
// token, rejecting tokens issued for any other purpose.
func ParseVerificationToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(utils.JWTSecretKey), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid verification token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	if purpose, _ := claims["purpose"].(string); purpose != "verify" {
		return "", errors.New("invalid token purpose")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", errors.New("invalid user ID in token")
	}
	return userID, nil
}
