package utils

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(42, "a@x.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "a@x.com" {
		t.Errorf("Email = %q, want a@x.com", claims.Email)
	}
	if claims.ID == "" {
		t.Error("jti must be set")
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) > time.Hour {
		t.Error("expiry must be at most the requested duration from now")
	}
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken(1, "a@x.com", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := ParseToken(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestParseToken_Tampered(t *testing.T) {
	token, err := GenerateToken(1, "a@x.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %d parts", len(parts))
	}
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]
	if _, err := ParseToken(tampered); err == nil {
		t.Error("expected error for tampered signature")
	}
}

func TestGenerateToken_UniqueJTI(t *testing.T) {
	t1, err := GenerateToken(1, "a@x.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	t2, err := GenerateToken(1, "a@x.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	c1, _ := ParseToken(t1)
	c2, _ := ParseToken(t2)
	if c1.ID == c2.ID {
		t.Error("two tokens must carry distinct jti values")
	}
}
