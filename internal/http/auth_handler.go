package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"uni-match/internal/service"
)

// AuthHandler expone el login stub y la rotacion de tokens. No hay
// credenciales: el login con email emite una sesion directamente, igual que
// el stub de la version anterior del sistema.
type AuthHandler struct {
	logger   *zap.Logger
	profiles *service.ProfileService
	jwtSvc   *service.JWTService
}

func NewAuthHandler(logger *zap.Logger, profiles *service.ProfileService, jwtSvc *service.JWTService) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		profiles: profiles,
		jwtSvc:   jwtSvc,
	}
}

// Login maneja POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		DisplayName string `json:"display_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	email := service.NormalizeAccountID(req.Email)
	displayName := strings.TrimSpace(req.DisplayName)

	// Si existe un perfil con ese email, el display name sale de ahi.
	if profile, err := h.profiles.GetByEmail(c.Request.Context(), email); err == nil {
		displayName = profile.DisplayName
	} else if !errors.Is(err, service.ErrNoSuchProfile) {
		writeServiceError(c, h.logger, err)
		return
	}
	if displayName == "" {
		displayName = strings.SplitN(email, "@", 2)[0]
	}

	pair, err := h.jwtSvc.GeneratePair(service.SessionIdentity{
		AccountID:   email,
		Email:       email,
		DisplayName: displayName,
	})
	if err != nil {
		h.logger.Error("generate session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tokens": pair,
		"user": gin.H{
			"email":        email,
			"display_name": displayName,
		},
	})
}

// Refresh maneja POST /auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	pair, err := h.jwtSvc.RefreshPair(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": pair})
}

// Logout maneja POST /auth/logout revocando el refresh token.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.jwtSvc.RevokeRefresh(req.RefreshToken); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
