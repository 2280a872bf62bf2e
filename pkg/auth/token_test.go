package auth

import (
	"testing"
	"time"

	"github.com/fieldopshq/fieldops-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "fieldops-test",
		ExpirationMinutes: 30,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now()

	signed, err := MintAccessToken(cfg, now, AccessTokenPayload{
		UserID:   42,
		Username: "dispatch",
		IsAdmin:  true,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseAccessToken(cfg, signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Username != "dispatch" {
		t.Fatalf("unexpected username %q", claims.Username)
	}
	if !claims.IsAdmin {
		t.Fatal("expected admin flag preserved")
	}
	if claims.ID == "" {
		t.Fatal("expected generated jti")
	}
}

func TestMintRejectsInvalidPayload(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now()

	if _, err := MintAccessToken(cfg, now, AccessTokenPayload{Username: "x"}); err == nil {
		t.Fatal("expected error for missing user id")
	}
	if _, err := MintAccessToken(cfg, now, AccessTokenPayload{UserID: 1}); err == nil {
		t.Fatal("expected error for missing username")
	}
	if _, err := MintAccessToken(config.JWTConfig{Issuer: "x", ExpirationMinutes: 5}, now, AccessTokenPayload{UserID: 1, Username: "x"}); err == nil {
		t.Fatal("expected error for missing secret")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	past := time.Now().Add(-2 * time.Hour)

	signed, err := MintAccessToken(cfg, past, AccessTokenPayload{UserID: 7, Username: "tech"})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: 7, Username: "tech"})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := cfg
	other.Issuer = "someone-else"
	if _, err := ParseAccessToken(other, signed); err == nil {
		t.Fatal("expected issuer mismatch error")
	}
}
