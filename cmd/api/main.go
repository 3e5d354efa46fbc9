package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"uni-match/internal/config"
	"uni-match/internal/db"
	"uni-match/internal/email"
	apihttp "uni-match/internal/http"
	"uni-match/internal/llm"
	"uni-match/internal/repository"
	"uni-match/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Sin DATABASE_URL el servicio corre sobre repositorios en memoria,
	// igual que la version anterior caia a colecciones mock.
	var (
		accountRepo repository.AccountRepository
		profileRepo repository.ProfileRepository
		ping        func() error
	)
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		if err := db.Migrate(ctx, pool); err != nil {
			logger.Fatal("db migrate", zap.Error(err))
		}
		accountRepo = repository.NewPgAccountRepository(pool)
		profileRepo = repository.NewPgProfileRepository(pool)
		ping = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return db.Ping(pingCtx, pool)
		}
	} else {
		logger.Warn("no DATABASE_URL configured, using in-memory stores")
		accountRepo = repository.NewMemoryAccountRepository()
		profileRepo = repository.NewMemoryProfileRepository()
	}

	var (
		balanceCache   service.BalanceCache
		summaryLimiter service.SummaryRateLimiter = service.NewSummaryRateLimiter(time.Minute, 10)
		tokenStore     service.RefreshTokenStore
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			balanceCache = service.NewRedisBalanceCache(redisClient, time.Hour)
			summaryLimiter = service.NewRedisSummaryRateLimiter(redisClient, time.Minute, 10)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
		}
		cancel()
	}

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	var llmClient llm.Client = llm.NewStubClient()
	if cfg.LLMAPIKey != "" {
		llmClient = llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, logger)
	} else {
		logger.Warn("no LLM_API_KEY configured, summaries use the stub text")
	}

	var scorer service.CompatibilityScorer = service.RandomScorer{}
	if strings.EqualFold(cfg.ScorerMode, "traits") {
		scorer = service.TraitScorer{}
	}

	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	ledgerSvc := service.NewLedgerService(logger, accountRepo, balanceCache, emailSender)
	profileSvc := service.NewProfileService(logger, profileRepo)
	matchSvc := service.NewMatchService(logger, profileRepo, scorer)
	summarySvc := service.NewSummaryService(
		logger,
		ledgerSvc,
		profileRepo,
		llmClient,
		summaryLimiter,
		time.Duration(cfg.SummaryTimeoutSeconds)*time.Second,
	)

	authHandler := apihttp.NewAuthHandler(logger, profileSvc, jwtSvc)
	creditHandler := apihttp.NewCreditHandler(logger, ledgerSvc)
	profileHandler := apihttp.NewProfileHandler(logger, profileSvc)
	matchHandler := apihttp.NewMatchHandler(logger, matchSvc, ledgerSvc)
	summaryHandler := apihttp.NewSummaryHandler(logger, summarySvc)

	router := apihttp.NewRouter(
		logger,
		authHandler,
		creditHandler,
		profileHandler,
		matchHandler,
		summaryHandler,
		apihttp.JWTAuthMiddleware(jwtSvc),
		apihttp.Healthz(ping),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
