package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"uni-match/internal/domain"
	"uni-match/internal/repository"
)

// fixedScorer devuelve scores precargados por ID del candidato.
type fixedScorer struct {
	scores map[string]int
}

func (f fixedScorer) Score(_, other domain.Profile) int {
	return f.scores[other.ID]
}

func seedMatchPool(t *testing.T) *repository.MemoryProfileRepository {
	t.Helper()
	repo := repository.NewMemoryProfileRepository()
	profiles := []domain.Profile{
		{ID: "me", Email: "me@uni.edu", DisplayName: "Me"},
		{ID: "a", Email: "a@uni.edu", DisplayName: "Alice"},
		{ID: "b", Email: "b@uni.edu", DisplayName: "Bea"},
		{ID: "c", Email: "c@uni.edu", DisplayName: "Cleo"},
	}
	for _, p := range profiles {
		if err := repo.Create(context.Background(), p); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
	return repo
}

func TestGenerateRanksAndTruncates(t *testing.T) {
	repo := seedMatchPool(t)
	scorer := fixedScorer{scores: map[string]int{"a": 70, "b": 95, "c": 81}}
	svc := NewMatchService(zap.NewNop(), repo, scorer)

	results, err := svc.Generate(context.Background(), "me@uni.edu", 0, 2)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Profile.ID != "b" || results[0].Compatibility != 95 {
		t.Fatalf("expected b=95 first, got %s=%d", results[0].Profile.ID, results[0].Compatibility)
	}
	if results[1].Profile.ID != "c" || results[1].Compatibility != 81 {
		t.Fatalf("expected c=81 second, got %s=%d", results[1].Profile.ID, results[1].Compatibility)
	}
}

func TestGenerateExcludesRequester(t *testing.T) {
	repo := seedMatchPool(t)
	scorer := fixedScorer{scores: map[string]int{"me": 100, "a": 70, "b": 70, "c": 70}}
	svc := NewMatchService(zap.NewNop(), repo, scorer)

	results, err := svc.Generate(context.Background(), "me@uni.edu", 0, 0)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	for _, r := range results {
		if r.Profile.ID == "me" {
			t.Fatal("requester included in own matches")
		}
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
}

func TestGenerateThresholdFiltersEverything(t *testing.T) {
	repo := seedMatchPool(t)
	scorer := fixedScorer{scores: map[string]int{"a": 80, "b": 80, "c": 80}}
	svc := NewMatchService(zap.NewNop(), repo, scorer)

	// 80/100 < 0.94: ningun candidato pasa.
	results, err := svc.Generate(context.Background(), "me@uni.edu", 0.94, 0)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty result, got %d", len(results))
	}
}

func TestGenerateThresholdBoundaryIncluded(t *testing.T) {
	repo := seedMatchPool(t)
	scorer := fixedScorer{scores: map[string]int{"a": 94, "b": 93, "c": 95}}
	svc := NewMatchService(zap.NewNop(), repo, scorer)

	// score/100 >= min es inclusivo: 94 pasa con min 0.94, 93 no.
	results, err := svc.Generate(context.Background(), "me@uni.edu", 0.94, 0)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Profile.ID != "c" || results[1].Profile.ID != "a" {
		t.Fatalf("unexpected order: %s, %s", results[0].Profile.ID, results[1].Profile.ID)
	}
}

func TestGenerateStableTieBreak(t *testing.T) {
	repo := seedMatchPool(t)
	scorer := fixedScorer{scores: map[string]int{"a": 80, "b": 80, "c": 80}}
	svc := NewMatchService(zap.NewNop(), repo, scorer)

	results, err := svc.Generate(context.Background(), "me@uni.edu", 0, 0)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	// Empates conservan el orden de insercion del pool.
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if results[i].Profile.ID != id {
			t.Fatalf("tie order broken at %d: expected %s, got %s", i, id, results[i].Profile.ID)
		}
	}
}

func TestGenerateDefaultLimit(t *testing.T) {
	repo := repository.NewMemoryProfileRepository()
	ctx := context.Background()
	if err := repo.Create(ctx, domain.Profile{ID: "me", Email: "me@uni.edu"}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	scores := map[string]int{}
	for i := 0; i < 15; i++ {
		id := string(rune('a' + i))
		if err := repo.Create(ctx, domain.Profile{ID: id, Email: id + "@uni.edu"}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		scores[id] = 60 + i
	}
	svc := NewMatchService(zap.NewNop(), repo, fixedScorer{scores: scores})

	results, err := svc.Generate(ctx, "me@uni.edu", 0, 0)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(results) != DefaultMatchLimit {
		t.Fatalf("expected %d results, got %d", DefaultMatchLimit, len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Compatibility > results[i-1].Compatibility {
			t.Fatalf("results not sorted descending at %d", i)
		}
	}
}

func TestGenerateEmptyPoolReturnsEmptyList(t *testing.T) {
	repo := repository.NewMemoryProfileRepository()
	if err := repo.Create(context.Background(), domain.Profile{ID: "me", Email: "me@uni.edu"}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	svc := NewMatchService(zap.NewNop(), repo, nil)

	results, err := svc.Generate(context.Background(), "me@uni.edu", 0, 0)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty result, got %d", len(results))
	}
}

func TestGenerateUnknownAccountFails(t *testing.T) {
	svc := NewMatchService(zap.NewNop(), repository.NewMemoryProfileRepository(), nil)

	if _, err := svc.Generate(context.Background(), "ghost@uni.edu", 0, 0); !errors.Is(err, ErrNoSuchProfile) {
		t.Fatalf("expected ErrNoSuchProfile, got %v", err)
	}
}

func TestGenerateResolvesByProfileID(t *testing.T) {
	repo := seedMatchPool(t)
	svc := NewMatchService(zap.NewNop(), repo, fixedScorer{scores: map[string]int{"a": 70, "b": 70, "c": 70}})

	results, err := svc.Generate(context.Background(), "me", 0, 0)
	if err != nil {
		t.Fatalf("generate by id failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
}
