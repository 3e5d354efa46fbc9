package main

import (
	"context"
	"log"
	"time"

	"uni-match/internal/config"
	"uni-match/internal/db"
	"uni-match/internal/domain"
	"uni-match/internal/repository"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Carga perfiles y cuentas demo para desarrollo.
func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("seed requires DATABASE_URL")
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	profiles := repository.NewPgProfileRepository(pool)
	accounts := repository.NewPgAccountRepository(pool)

	for _, p := range demoProfiles() {
		if err := profiles.Create(ctx, p); err != nil {
			logger.Warn("seed profile failed (already seeded?)", zap.String("email", p.Email), zap.Error(err))
			continue
		}
		if err := accounts.Upsert(ctx, domain.NewAccount(p.Email)); err != nil {
			logger.Warn("seed account failed", zap.String("email", p.Email), zap.Error(err))
			continue
		}
		logger.Info("seeded", zap.String("name", p.DisplayName), zap.String("email", p.Email))
	}
}

func demoProfiles() []domain.Profile {
	now := time.Now().UTC()
	base := func(name, email, institution, city, mbti, zodiac, bio string, age int, bigFive map[string]int) domain.Profile {
		p := domain.Profile{
			ID:          uuid.NewString(),
			Email:       email,
			DisplayName: name,
			Institution: institution,
			City:        city,
			Age:         age,
			MBTIType:    mbti,
			ZodiacSign:  zodiac,
			Bio:         bio,
			BigFive:     bigFive,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return p
	}

	return []domain.Profile{
		base("Sophie Laurent", "sophie@sorbonne.fr", "Sorbonne", "Paris", "INFP", "pisces",
			"Passionate about philosophy and modern art. Looking for deep conversations.", 22,
			map[string]int{
				domain.TraitOpenness:          88,
				domain.TraitConscientiousness: 61,
				domain.TraitExtraversion:      45,
				domain.TraitAgreeableness:     79,
				domain.TraitNeuroticism:       52,
			}),
		base("Marie Dubois", "marie@sciencespo.fr", "Sciences Po", "Paris", "ENFJ", "leo",
			"Political science student with a love for traveling and photography.", 21,
			map[string]int{
				domain.TraitOpenness:          74,
				domain.TraitConscientiousness: 70,
				domain.TraitExtraversion:      82,
				domain.TraitAgreeableness:     75,
				domain.TraitNeuroticism:       38,
			}),
		base("Emma Martin", "emma@hec.fr", "HEC", "Paris", "ESTJ", "virgo",
			"Business student who enjoys hiking and sustainable living.", 23,
			map[string]int{
				domain.TraitOpenness:          58,
				domain.TraitConscientiousness: 90,
				domain.TraitExtraversion:      66,
				domain.TraitAgreeableness:     60,
				domain.TraitNeuroticism:       30,
			}),
	}
}
