package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"uni-match/internal/domain"
	"uni-match/internal/repository"
)

var ErrNoSuchProfile = errors.New("profile not found")

// DefaultMatchLimit es el tope de resultados cuando el caller no pide otro.
const DefaultMatchLimit = 10

// MatchService genera la lista rankeada de matches para una cuenta.
// Es agnostico de creditos: verificar y debitar el credito es responsabilidad
// del caller, nunca de este servicio.
type MatchService struct {
	logger   *zap.Logger
	profiles repository.ProfileRepository
	scorer   CompatibilityScorer
}

func NewMatchService(logger *zap.Logger, profiles repository.ProfileRepository, scorer CompatibilityScorer) *MatchService {
	if scorer == nil {
		scorer = RandomScorer{}
	}
	return &MatchService{
		logger:   logger,
		profiles: profiles,
		scorer:   scorer,
	}
}

// Generate resuelve el perfil del solicitante, puntua cada candidato del pool
// (excluyendo el propio), filtra por score/100 >= minThreshold, ordena
// descendente con empates en orden de entrada y trunca a limit.
// Pool vacio despues de filtrar devuelve lista vacia, no error.
func (s *MatchService) Generate(ctx context.Context, accountID string, minThreshold float64, limit int) ([]domain.MatchResult, error) {
	me, err := s.resolveProfile(ctx, accountID)
	if err != nil {
		return nil, err
	}

	pool, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}

	if minThreshold < 0 {
		minThreshold = 0
	}
	if minThreshold > 1 {
		minThreshold = 1
	}
	if limit <= 0 {
		limit = DefaultMatchLimit
	}

	results := make([]domain.MatchResult, 0, len(pool))
	for _, candidate := range pool {
		if candidate.ID == me.ID {
			continue
		}
		score := s.scorer.Score(me, candidate)
		if float64(score)/100 < minThreshold {
			continue
		}
		results = append(results, domain.MatchResult{
			Profile:       candidate,
			Compatibility: score,
		})
	}

	// Orden estable: los empates conservan el orden del repositorio.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Compatibility > results[j].Compatibility
	})

	if len(results) > limit {
		results = results[:limit]
	}

	if s.logger != nil {
		s.logger.Debug("matches generated",
			zap.String("account", me.ID),
			zap.Int("pool", len(pool)),
			zap.Int("results", len(results)),
		)
	}
	return results, nil
}

// resolveProfile acepta email o id de perfil como identificador de cuenta.
func (s *MatchService) resolveProfile(ctx context.Context, accountID string) (domain.Profile, error) {
	accountID = NormalizeAccountID(accountID)
	if accountID == "" {
		return domain.Profile{}, ErrNoSuchProfile
	}

	me, err := s.profiles.GetByEmail(ctx, accountID)
	if err == nil {
		return me, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return domain.Profile{}, err
	}

	me, err = s.profiles.GetByID(ctx, accountID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Profile{}, ErrNoSuchProfile
	}
	return me, err
}
