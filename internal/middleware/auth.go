package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/elinspetor87/ai-vision-studio-sub000/internal/config"
	"github.com/elinspetor87/ai-vision-studio-sub000/internal/httperr"
)

const (
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"

	RoleAdmin = "admin"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Authorization header is required.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Expected a Bearer token.")
			return
		}

		claims := jwt.MapClaims{}
		token, err := parser.ParseWithClaims(parts[1], claims, func(*jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Token is invalid or expired.")
			return
		}

		email, err := claims.GetSubject()
		role, _ := claims["role"].(string)
		if err != nil || email == "" {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_payload", "Token has no subject.")
			return
		}

		c.Set(ContextUserEmail, email)
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserRole) != role {
			httperr.Abort(c, http.StatusForbidden, "forbidden", "Insufficient permissions.")
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return RequireRole(RoleAdmin)
}
