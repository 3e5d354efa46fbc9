package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"uni-match/internal/service"
)

// Tamano de pack por defecto al comprar creditos.
const defaultCreditPack = 5

// CreditHandler expone el ledger de creditos.
type CreditHandler struct {
	logger *zap.Logger
	ledger *service.LedgerService
}

func NewCreditHandler(logger *zap.Logger, ledger *service.LedgerService) *CreditHandler {
	return &CreditHandler{
		logger: logger,
		ledger: ledger,
	}
}

// GetBalance maneja GET /credits?email=...
func (h *CreditHandler) GetBalance(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	balance, err := h.ledger.GetBalance(c.Request.Context(), email)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, balance)
}

// Consume maneja POST /credits/consume.
func (h *CreditHandler) Consume(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid consume request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	balance, err := h.ledger.ConsumeOne(c.Request.Context(), req.Email)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, balance)
}

// Buy maneja POST /credits/buy. Sin pack explicito se compra el pack de 5.
func (h *CreditHandler) Buy(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
		Pack  *int   `json:"pack"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid buy request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	pack := defaultCreditPack
	if req.Pack != nil {
		pack = *req.Pack
	}

	balance, err := h.ledger.AddPaid(c.Request.Context(), req.Email, pack)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, balance)
}

// Reset maneja POST /credits/reset. Operacion administrativa/testing.
func (h *CreditHandler) Reset(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid reset request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	balance, err := h.ledger.Reset(c.Request.Context(), req.Email)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, balance)
}
