package util

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken(secret, "user-1", "owner@dairy.test", "admin", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q, want admin", claims.Role)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", "user-1", "owner@dairy.test", "admin", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := ParseToken("secret-b", token); err == nil {
		t.Error("ParseToken() with wrong secret should fail")
	}
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken("secret", "user-1", "owner@dairy.test", "admin", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := ParseToken("secret", token); err == nil {
		t.Error("ParseToken() with expired token should fail")
	}
}
