package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	InitAdminJWT("test-secret")

	token, expiry, err := GenerateAdminToken("admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if time.Until(expiry) < 23*time.Hour {
		t.Fatalf("expected ~24h expiry, got %v", expiry)
	}

	adminID, err := ParseAdminToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if adminID != "admin" {
		t.Fatalf("expected admin id round-trip, got %q", adminID)
	}
}

func TestParseAdminToken_Invalid(t *testing.T) {
	InitAdminJWT("test-secret")

	if _, err := ParseAdminToken("not.a.token"); err == nil {
		t.Fatal("expected garbage token to fail")
	}

	token, _, err := GenerateAdminToken("admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	InitAdminJWT("different-secret")
	if _, err := ParseAdminToken(token); err == nil {
		t.Fatal("expected token signed with old secret to fail")
	}
}

func TestParseAdminToken_Expired(t *testing.T) {
	InitAdminJWT("test-secret")

	claims := jwt.MapClaims{
		"admin_id": "admin",
		"exp":      time.Now().Add(-time.Hour).Unix(),
		"iat":      time.Now().Add(-25 * time.Hour).Unix(),
		"nbf":      time.Now().Add(-25 * time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseAdminToken(expired); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestParseAdminToken_NotYetValid(t *testing.T) {
	InitAdminJWT("test-secret")

	claims := jwt.MapClaims{
		"admin_id": "admin",
		"exp":      time.Now().Add(25 * time.Hour).Unix(),
		"nbf":      time.Now().Add(time.Hour).Unix(),
	}
	future, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseAdminToken(future); err == nil {
		t.Fatal("expected not-yet-valid token to fail")
	}
}
