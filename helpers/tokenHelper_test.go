package helpers

import (
	"testing"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
)

func TestTokenRoundtrip(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	token, refresh, err := GenerateAllTokens("user@example.com", "User One", "uid-1")
	if err != nil {
		t.Fatalf("GenerateAllTokens: %v", err)
	}
	if token == "" || refresh == "" {
		t.Fatal("expected non-empty tokens")
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Uid != "uid-1" {
		t.Errorf("Uid = %q, want %q", claims.Uid, "uid-1")
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "user@example.com")
	}
	if claims.DisplayName != "User One" {
		t.Errorf("DisplayName = %q, want %q", claims.DisplayName, "User One")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	claims := &SignedDetails{
		Uid: "uid-1",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(-time.Hour).Unix(),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ValidateToken(expired); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	token, _, err := GenerateAllTokens("user@example.com", "User", "uid-1")
	if err != nil {
		t.Fatalf("GenerateAllTokens: %v", err)
	}

	t.Setenv("SECRET_KEY", "another-secret")
	if _, err := ValidateToken(token); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}
