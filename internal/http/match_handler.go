package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"uni-match/internal/service"
)

// MatchHandler expone la generacion de matches. El generador es agnostico de
// creditos, asi que el debito vive aca: este endpoint es la accion de UI que
// gasta el credito.
type MatchHandler struct {
	logger  *zap.Logger
	matches *service.MatchService
	ledger  *service.LedgerService
}

func NewMatchHandler(logger *zap.Logger, matches *service.MatchService, ledger *service.LedgerService) *MatchHandler {
	return &MatchHandler{
		logger:  logger,
		matches: matches,
		ledger:  ledger,
	}
}

// GetMatches maneja GET /matches?email=...&min=...&limit=...
// Chequea saldo, genera y recien entonces debita: si la generacion falla no
// queda ningun credito gastado, y si el debito pierde la carrera contra otro
// request la lista se descarta con 402.
func (h *MatchHandler) GetMatches(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	min := 0.0
	if raw := c.Query("min"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 || parsed > 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "min must be a number between 0 and 1"})
			return
		}
		min = parsed
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	ctx := c.Request.Context()

	balance, err := h.ledger.GetBalance(ctx, email)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	if balance.Total() < 1 {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient credit"})
		return
	}

	results, err := h.matches.Generate(ctx, email, min, limit)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	creditsLeft, err := h.ledger.ConsumeOne(ctx, email)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches":      results,
		"credits_left": creditsLeft,
	})
}
