package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/elinspetor87/ai-vision-studio-sub000/internal/config"
	"github.com/elinspetor87/ai-vision-studio-sub000/internal/dto"
	"github.com/elinspetor87/ai-vision-studio-sub000/internal/httperr"
	"github.com/elinspetor87/ai-vision-studio-sub000/internal/middleware"
)

type AuthHandler struct {
	config *config.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthHandler(cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{config: cfg, log: log, now: time.Now}
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Email and password are required.")
		return
	}

	if h.config.AdminPasswordHash == "" {
		h.log.Warn("login attempted but ADMIN_PASSWORD_HASH is not configured")
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(h.config.AdminEmail)) == 1

	// always run bcrypt so a wrong email costs the same as a wrong password
	pwErr := bcrypt.CompareHashAndPassword([]byte(h.config.AdminPasswordHash), []byte(req.Password))
	if !emailOK || pwErr != nil {
		h.log.Info("admin login rejected", zap.String("email", email), zap.String("client_ip", c.ClientIP()))
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}

	token, expiresAt, err := h.generateToken(email)
	if err != nil {
		h.log.Error("failed to sign token", zap.Error(err))
		httperr.Internal(c, "failed_to_generate_token", "Could not issue a token.")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(email string) (string, time.Time, error) {
	now := h.now()
	expiresAt := now.Add(h.config.JWTTTL).UTC()

	claims := jwt.MapClaims{
		"sub":  email,
		"role": middleware.RoleAdmin,
		"exp":  expiresAt.Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.config.JWTSecret))
	return signed, expiresAt, err
}
