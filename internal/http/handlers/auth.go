package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthConfig holds the single admin account allowed to read reports.
type AuthConfig struct {
	Secret            []byte
	AdminUsername     string
	AdminPasswordHash string
	TokenTTL          time.Duration
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if h.Auth.AdminPasswordHash == "" {
		respondError(c, http.StatusServiceUnavailable, "auth_disabled", "admin login is not configured", nil)
		return
	}
	if !strings.EqualFold(strings.TrimSpace(req.Username), h.Auth.AdminUsername) {
		respondError(c, http.StatusUnauthorized, "invalid_credentials", "wrong username or password", nil)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.Auth.AdminPasswordHash), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "invalid_credentials", "wrong username or password", nil)
		return
	}

	ttl := h.Auth.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  h.Auth.AdminUsername,
		"role": "admin",
		"exp":  time.Now().Add(ttl).Unix(),
	})
	tokenString, err := token.SignedString(h.Auth.Secret)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "token_error", "could not create token", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user":  gin.H{"username": h.Auth.AdminUsername, "role": "admin"},
	})
}
