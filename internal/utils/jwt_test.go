package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(userID, "test-secret", 1)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("user id = %s, want %s", claims.UserID, userID)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "test-secret", 1)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ParseToken(token, "other-secret"); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "test-secret", -1)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ParseToken(token, "test-secret"); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct-horse" {
		t.Error("hash equals plain text")
	}
	if !VerifyPassword("correct-horse", hash) {
		t.Error("correct password rejected")
	}
	if VerifyPassword("wrong", hash) {
		t.Error("wrong password accepted")
	}
}
