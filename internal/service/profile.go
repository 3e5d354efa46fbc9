package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"uni-match/internal/domain"
	"uni-match/internal/repository"
)

var ErrInvalidProfile = errors.New("invalid profile")

// ProfileService coordina el alta de perfiles (onboarding) y las ediciones
// tipadas por campo.
type ProfileService struct {
	logger   *zap.Logger
	profiles repository.ProfileRepository
}

func NewProfileService(logger *zap.Logger, profiles repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		logger:   logger,
		profiles: profiles,
	}
}

type CreateProfileInput struct {
	Email       string
	DisplayName string
	Institution string
	Bio         string
	City        string
	Age         int
	MBTIType    string
	ZodiacSign  string
	PhotoURL    string
	BigFive     map[string]int
	DarkTriad   map[string]int
}

func (s *ProfileService) Create(ctx context.Context, input CreateProfileInput) (domain.Profile, error) {
	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		return domain.Profile{}, ErrInvalidProfile
	}

	now := time.Now().UTC()
	profile := domain.Profile{
		ID:          uuid.NewString(),
		Email:       NormalizeAccountID(input.Email),
		DisplayName: displayName,
		Institution: strings.TrimSpace(input.Institution),
		Bio:         strings.TrimSpace(input.Bio),
		City:        strings.TrimSpace(input.City),
		Age:         input.Age,
		MBTIType:    strings.ToUpper(strings.TrimSpace(input.MBTIType)),
		ZodiacSign:  strings.ToLower(strings.TrimSpace(input.ZodiacSign)),
		PhotoURL:    strings.TrimSpace(input.PhotoURL),
		BigFive:     clampTraits(input.BigFive),
		DarkTriad:   clampTraits(input.DarkTriad),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

func (s *ProfileService) GetByID(ctx context.Context, id string) (domain.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, strings.TrimSpace(id))
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Profile{}, ErrNoSuchProfile
	}
	return profile, err
}

func (s *ProfileService) GetByEmail(ctx context.Context, email string) (domain.Profile, error) {
	profile, err := s.profiles.GetByEmail(ctx, NormalizeAccountID(email))
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Profile{}, ErrNoSuchProfile
	}
	return profile, err
}

func (s *ProfileService) List(ctx context.Context) ([]domain.Profile, error) {
	return s.profiles.List(ctx)
}

// Update aplica una edicion tipada. Los mapas de rasgos se clampean a 0-100
// antes de persistir.
func (s *ProfileService) Update(ctx context.Context, id string, update domain.ProfileUpdate) (domain.Profile, error) {
	if update.BigFive != nil {
		clamped := clampTraits(*update.BigFive)
		update.BigFive = &clamped
	}
	if update.DarkTriad != nil {
		clamped := clampTraits(*update.DarkTriad)
		update.DarkTriad = &clamped
	}

	err := s.profiles.Update(ctx, strings.TrimSpace(id), update)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Profile{}, ErrNoSuchProfile
	}
	if err != nil {
		return domain.Profile{}, err
	}
	return s.GetByID(ctx, id)
}

func clampTraits(traits map[string]int) map[string]int {
	if traits == nil {
		return nil
	}
	out := make(map[string]int, len(traits))
	for trait, value := range traits {
		if value < 0 {
			value = 0
		}
		if value > 100 {
			value = 100
		}
		out[strings.ToLower(strings.TrimSpace(trait))] = value
	}
	return out
}
