package http

import (
	"context"
	"net/http"
	"testing"

	"uni-match/internal/domain"
	"uni-match/internal/service"
)

type matchesResponse struct {
	Matches     []domain.MatchResult `json:"matches"`
	CreditsLeft domain.Balance       `json:"credits_left"`
}

func seedProfiles(t *testing.T, api testAPI, names ...string) map[string]string {
	t.Helper()
	ids := make(map[string]string, len(names))
	for _, name := range names {
		profile, err := api.profiles.Create(context.Background(), service.CreateProfileInput{
			Email:       name + "@uni.edu",
			DisplayName: name,
		})
		if err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
		ids[name] = profile.ID
	}
	return ids
}

func TestGetMatchesRanksAndDebits(t *testing.T) {
	scores := map[string]int{}
	api := newTestAPI(t, stubScorer{scores: scores}, nil)
	ids := seedProfiles(t, api, "me", "alice", "bea", "cleo")
	scores[ids["alice"]] = 70
	scores[ids["bea"]] = 95
	scores[ids["cleo"]] = 81

	rec := api.do(t, http.MethodGet, "/matches?email=me@uni.edu&limit=2", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp matchesResponse
	decodeJSON(t, rec, &resp)
	if len(resp.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(resp.Matches))
	}
	if resp.Matches[0].Profile.ID != ids["bea"] || resp.Matches[0].Compatibility != 95 {
		t.Fatalf("unexpected first match: %+v", resp.Matches[0])
	}
	if resp.Matches[1].Profile.ID != ids["cleo"] || resp.Matches[1].Compatibility != 81 {
		t.Fatalf("unexpected second match: %+v", resp.Matches[1])
	}
	if resp.CreditsLeft.FreeLeft != 2 || resp.CreditsLeft.PaidLeft != 0 {
		t.Fatalf("expected {2,0} after debit, got %+v", resp.CreditsLeft)
	}
}

func TestGetMatchesWithoutCreditIs402(t *testing.T) {
	api := newTestAPI(t, stubScorer{scores: map[string]int{}}, nil)
	seedProfiles(t, api, "me", "alice")

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := api.ledger.ConsumeOne(ctx, "me@uni.edu"); err != nil {
			t.Fatalf("drain %d failed: %v", i, err)
		}
	}

	rec := api.do(t, http.MethodGet, "/matches?email=me@uni.edu", nil, nil)
	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetMatchesHighThresholdReturnsEmptyButDebits(t *testing.T) {
	scores := map[string]int{}
	api := newTestAPI(t, stubScorer{scores: scores}, nil)
	ids := seedProfiles(t, api, "me", "alice")
	scores[ids["alice"]] = 80

	rec := api.do(t, http.MethodGet, "/matches?email=me@uni.edu&min=0.94", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp matchesResponse
	decodeJSON(t, rec, &resp)
	if len(resp.Matches) != 0 {
		t.Fatalf("expected empty matches, got %d", len(resp.Matches))
	}
	// La lista vacia tambien cuesta el credito.
	if resp.CreditsLeft.FreeLeft != 2 {
		t.Fatalf("expected debit, got %+v", resp.CreditsLeft)
	}
}

func TestGetMatchesValidatesParams(t *testing.T) {
	api := newTestAPI(t, nil, nil)

	cases := []string{
		"/matches",
		"/matches?email=me@uni.edu&min=1.5",
		"/matches?email=me@uni.edu&min=abc",
		"/matches?email=me@uni.edu&limit=0",
		"/matches?email=me@uni.edu&limit=-2",
	}
	for _, path := range cases {
		rec := api.do(t, http.MethodGet, path, nil, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, rec.Code)
		}
	}
}

func TestGetMatchesUnknownProfileIs404(t *testing.T) {
	api := newTestAPI(t, nil, nil)

	rec := api.do(t, http.MethodGet, "/matches?email=ghost@uni.edu", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}

	// El fallo no debito nada.
	balance, err := api.ledger.GetBalance(context.Background(), "ghost@uni.edu")
	if err != nil {
		t.Fatalf("getBalance failed: %v", err)
	}
	if balance.FreeLeft != 3 {
		t.Fatalf("credit debited on failure: %+v", balance)
	}
}
