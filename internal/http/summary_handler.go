package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"uni-match/internal/service"
)

// SummaryHandler expone el mini analisis de compatibilidad.
type SummaryHandler struct {
	logger    *zap.Logger
	summaries *service.SummaryService
}

func NewSummaryHandler(logger *zap.Logger, summaries *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		logger:    logger,
		summaries: summaries,
	}
}

// Summarize maneja POST /summary.
func (h *SummaryHandler) Summarize(c *gin.Context) {
	var req struct {
		Email   string `json:"email" binding:"required"`
		OtherID string `json:"other_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid summary request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	summary, err := h.summaries.Summarize(c.Request.Context(), req.Email, req.OtherID)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
