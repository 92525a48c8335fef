package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// RequireAuth verifies an HS256 bearer token and stores its subject and role
// as "userID" and "userRole" on the context. An empty secret rejects every
// request.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(secret) == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized: token verification is not configured",
			})
			return
		}

		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized: missing bearer token",
			})
			return
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(t *jwt.Token) (any, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			msg := "unauthorized: invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "unauthorized: token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		sub, _ := claims.GetSubject()
		role, _ := claims["role"].(string)
		c.Set("userID", sub)
		c.Set("userRole", role)
		c.Next()
	}
}
