package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"uni-match/internal/domain"
	"uni-match/internal/service"
)

// ProfileHandler expone onboarding, listado y edicion de perfiles.
type ProfileHandler struct {
	logger   *zap.Logger
	profiles *service.ProfileService
}

func NewProfileHandler(logger *zap.Logger, profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		logger:   logger,
		profiles: profiles,
	}
}

// Create maneja POST /profiles (submit de onboarding).
func (h *ProfileHandler) Create(c *gin.Context) {
	var req struct {
		Email       string         `json:"email" binding:"required,email"`
		DisplayName string         `json:"display_name" binding:"required"`
		Institution string         `json:"institution"`
		Bio         string         `json:"bio"`
		City        string         `json:"city"`
		Age         int            `json:"age"`
		MBTIType    string         `json:"mbti"`
		ZodiacSign  string         `json:"zodiac_sign"`
		PhotoURL    string         `json:"photo_url"`
		BigFive     map[string]int `json:"big_five"`
		DarkTriad   map[string]int `json:"dark_triad"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create profile request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	profile, err := h.profiles.Create(c.Request.Context(), service.CreateProfileInput{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Institution: req.Institution,
		Bio:         req.Bio,
		City:        req.City,
		Age:         req.Age,
		MBTIType:    req.MBTIType,
		ZodiacSign:  req.ZodiacSign,
		PhotoURL:    req.PhotoURL,
		BigFive:     req.BigFive,
		DarkTriad:   req.DarkTriad,
	})
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"profile": profile})
}

// List maneja GET /profiles.
func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.profiles.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

// GetByID maneja GET /profiles/:id.
func (h *ProfileHandler) GetByID(c *gin.Context) {
	profile, err := h.profiles.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// GetMe maneja GET /me/profile usando la identidad del token.
func (h *ProfileHandler) GetMe(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	profile, err := h.profiles.GetByEmail(c.Request.Context(), claims.Email)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateMe maneja PATCH /me/profile con un update tipado por campo.
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var update domain.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		h.logger.Warn("invalid profile update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if update.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	current, err := h.profiles.GetByEmail(c.Request.Context(), claims.Email)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	profile, err := h.profiles.Update(c.Request.Context(), current.ID, update)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
