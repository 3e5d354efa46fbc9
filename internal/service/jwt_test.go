package service

import (
	"errors"
	"testing"
	"time"
)

func newTestJWT() *JWTService {
	return NewJWTService("test-secret", time.Minute, time.Hour)
}

func TestGeneratePairAndParseAccess(t *testing.T) {
	svc := newTestJWT()

	pair, err := svc.GeneratePair(SessionIdentity{
		AccountID:   "me@uni.edu",
		Email:       "me@uni.edu",
		DisplayName: "Me",
	})
	if err != nil {
		t.Fatalf("generatePair failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("empty tokens")
	}
	if pair.ExpiresIn != 60 {
		t.Fatalf("expected expires_in 60, got %d", pair.ExpiresIn)
	}

	claims, err := svc.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("parse access failed: %v", err)
	}
	if claims.AccountID != "me@uni.edu" || claims.DisplayName != "Me" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseAccessRejectsRefreshToken(t *testing.T) {
	svc := newTestJWT()

	pair, err := svc.GeneratePair(SessionIdentity{AccountID: "me@uni.edu", Email: "me@uni.edu"})
	if err != nil {
		t.Fatalf("generatePair failed: %v", err)
	}

	if _, err := svc.ParseAccessToken(pair.RefreshToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid, got %v", err)
	}
}

func TestRefreshRotatesAndRevokesOldToken(t *testing.T) {
	svc := newTestJWT()

	pair, err := svc.GeneratePair(SessionIdentity{AccountID: "me@uni.edu", Email: "me@uni.edu"})
	if err != nil {
		t.Fatalf("generatePair failed: %v", err)
	}

	rotated, err := svc.RefreshPair(pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Fatal("refresh token not rotated")
	}

	// El refresh viejo quedo revocado.
	if _, err := svc.RefreshPair(pair.RefreshToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for reused refresh, got %v", err)
	}

	// El nuevo sigue siendo valido.
	if _, err := svc.RefreshPair(rotated.RefreshToken); err != nil {
		t.Fatalf("rotated refresh failed: %v", err)
	}
}

func TestRevokeRefreshInvalidatesToken(t *testing.T) {
	svc := newTestJWT()

	pair, err := svc.GeneratePair(SessionIdentity{AccountID: "me@uni.edu", Email: "me@uni.edu"})
	if err != nil {
		t.Fatalf("generatePair failed: %v", err)
	}
	if err := svc.RevokeRefresh(pair.RefreshToken); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if _, err := svc.RefreshPair(pair.RefreshToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid after logout, got %v", err)
	}
}

func TestParseWithWrongSecretFails(t *testing.T) {
	svc := newTestJWT()
	other := NewJWTService("other-secret", time.Minute, time.Hour)

	pair, err := svc.GeneratePair(SessionIdentity{AccountID: "me@uni.edu", Email: "me@uni.edu"})
	if err != nil {
		t.Fatalf("generatePair failed: %v", err)
	}
	if _, err := other.ParseAccessToken(pair.AccessToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid, got %v", err)
	}
}

func TestGeneratePairWithoutSecretFails(t *testing.T) {
	svc := NewJWTService("", time.Minute, time.Hour)

	if _, err := svc.GeneratePair(SessionIdentity{AccountID: "me@uni.edu"}); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid, got %v", err)
	}
}

func TestExpiredAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Minute, time.Hour)
	svc.accessTTL = -time.Minute

	pair, err := svc.GeneratePair(SessionIdentity{AccountID: "me@uni.edu", Email: "me@uni.edu"})
	if err != nil {
		t.Fatalf("generatePair failed: %v", err)
	}
	if _, err := svc.ParseAccessToken(pair.AccessToken); !errors.Is(err, ErrJWTExpired) {
		t.Fatalf("expected ErrJWTExpired, got %v", err)
	}
}
