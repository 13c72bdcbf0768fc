package middleware

import (
	"errors"
	"strings"
	"time"

	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the bearer token and stores the caller's user
// id in the context. Every route except register/login/verify runs it.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.Unauthorized(c, "Missing or invalid token")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(utils.JWTSecretKey), nil
		})
		if err != nil || !token.Valid {
			utils.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["user_id"] == nil || claims["exp"] == nil {
			utils.Unauthorized(c, "Invalid token claims")
			c.Abort()
			return
		}

		// Verification-link tokens are not bearer credentials
		if purpose, exists := claims["purpose"]; exists && purpose == "verify" {
			utils.Unauthorized(c, "Invalid token type")
			c.Abort()
			return
		}

		if exp, ok := claims["exp"].(float64); ok {
			if time.Now().Unix() > int64(exp) {
				utils.Unauthorized(c, "Token has expired")
				c.Abort()
				return
			}
		}

		if iss, ok := claims["iss"].(string); ok && iss != utils.JWTIssuer {
			utils.Unauthorized(c, "Invalid token issuer")
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			utils.Unauthorized(c, "Invalid user ID in token")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
