package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	authH *AuthHandler,
	creditH *CreditHandler,
	profileH *ProfileHandler,
	matchH *MatchHandler,
	summaryH *SummaryHandler,
	authMiddleware gin.HandlerFunc,
	healthz gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	if healthz != nil {
		r.GET("/healthz", healthz)
	}

	auth := r.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.Refresh)
	auth.POST("/logout", authH.Logout)

	credits := r.Group("/credits")
	credits.GET("", creditH.GetBalance)
	credits.POST("/consume", creditH.Consume)
	credits.POST("/buy", creditH.Buy)
	credits.POST("/reset", creditH.Reset)

	profiles := r.Group("/profiles")
	profiles.POST("", profileH.Create)
	profiles.GET("", profileH.List)
	profiles.GET("/:id", profileH.GetByID)

	r.GET("/matches", matchH.GetMatches)
	r.POST("/summary", summaryH.Summarize)

	me := r.Group("/me")
	me.Use(authMiddleware)
	me.GET("/profile", profileH.GetMe)
	me.PATCH("/profile", profileH.UpdateMe)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

// Healthz arma el handler de health check a partir de una funcion de ping.
func Healthz(ping func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			if err := ping(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
