package jwt

import (
	"testing"
	"time"

	"studie-planner/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:   "test-secret-key-for-unit-testing-2026",
		Issuer:      "studie-planner",
		DevTokenTTL: time.Hour,
	})
}

func TestGenerateAndParseToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateToken("user-1", "student", "house-1", 0)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("expected UserID=user-1, got %s", claims.UserID)
	}
	if claims.Role != "student" {
		t.Errorf("expected Role=student, got %s", claims.Role)
	}
	if claims.HouseholdID != "house-1" {
		t.Errorf("expected HouseholdID=house-1, got %s", claims.HouseholdID)
	}
	if claims.Issuer != "studie-planner" {
		t.Errorf("expected Issuer=studie-planner, got %s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("JTI should not be empty")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 59*time.Minute || ttl > 61*time.Minute {
		t.Errorf("expected default TTL of about 1h, got %v", ttl)
	}
}

func TestGenerateToken_ExplicitTTL(t *testing.T) {
	m := newTestManager()

	token, _ := m.GenerateToken("user-1", "parent", "house-1", 7*24*time.Hour)
	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 6*24*time.Hour || ttl > 8*24*time.Hour {
		t.Errorf("expected TTL of about 7 days, got %v", ttl)
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	m := newTestManager()

	_, err := m.ParseToken("invalid.token.string")
	if err != ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m1 := newTestManager()
	m2 := NewManager(&config.AuthConfig{
		JWTSecret: "different-secret-key-0000",
		Issuer:    "studie-planner",
	})

	token, _ := m1.GenerateToken("user-1", "student", "house-1", 0)
	if _, err := m2.ParseToken(token); err == nil {
		t.Error("token signed with another secret must not validate")
	}
}

func TestParseToken_WrongIssuer(t *testing.T) {
	other := NewManager(&config.AuthConfig{
		JWTSecret: "test-secret-key-for-unit-testing-2026",
		Issuer:    "someone-else",
	})

	token, _ := other.GenerateToken("user-1", "student", "house-1", 0)
	if _, err := newTestManager().ParseToken(token); err != ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid for foreign issuer, got %v", err)
	}
}

func TestParseToken_ExpiredToken(t *testing.T) {
	m := newTestManager()

	token, _ := m.GenerateToken("user-1", "student", "house-1", time.Millisecond)
	time.Sleep(1100 * time.Millisecond)

	_, err := m.ParseToken(token)
	if err != ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}
