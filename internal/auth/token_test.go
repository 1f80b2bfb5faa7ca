package auth

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func testSecret(t *testing.T, raw string) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

func TestTokenService_IssueValidateRoundtrip(t *testing.T) {
	svc, err := NewTokenService(testSecret(t, "roundtrip-secret"), time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}

	token, err := svc.Issue("ana1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.Username != "ana1" {
		t.Errorf("Validate() username = %q, want %q", claims.Username, "ana1")
	}
	if !claims.ExpiresAt.After(time.Now()) {
		t.Errorf("Validate() expiresAt = %v, want in the future", claims.ExpiresAt)
	}
}

func TestTokenService_InvalidTokens(t *testing.T) {
	svc, err := NewTokenService(testSecret(t, "invalid-token-secret"), time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "garbage token",
			token: "not-a-jwt",
		},
		{
			name:  "malformed JWT",
			token: "header.payload.signature",
		},
		{
			name: "wrong secret",
			token: func() string {
				other, err := NewTokenService(testSecret(t, "a-different-secret"), time.Hour)
				if err != nil {
					t.Fatalf("NewTokenService() error = %v", err)
				}
				token, _ := other.Issue("ana1")
				return token
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(tt.token)
			if !errors.Is(err, ErrInvalidSignature) {
				t.Errorf("Validate() error = %v, want ErrInvalidSignature", err)
			}
		})
	}
}

func TestTokenService_ExpiredToken(t *testing.T) {
	rawSecret := "expired-token-secret"
	svc, err := NewTokenService(testSecret(t, rawSecret), time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}

	// Sign a token with the same secret whose expiry is already past.
	now := time.Now()
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "ana1",
		IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
	})
	token, err := expired.SignedString([]byte(rawSecret))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	_, err = svc.Validate(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Validate() error = %v, want ErrTokenExpired", err)
	}

	if svc.IsValid(token, "ana1") {
		t.Error("IsValid() = true for expired token")
	}
}

func TestTokenService_IsValid_SubjectBinding(t *testing.T) {
	svc, err := NewTokenService(testSecret(t, "subject-binding-secret"), time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}

	token, err := svc.Issue("ana1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if !svc.IsValid(token, "ana1") {
		t.Error("IsValid() = false for the issuing user")
	}
	// The secret is shared across users; the subject check is the only
	// thing stopping token reuse under another identity.
	if svc.IsValid(token, "benito2") {
		t.Error("IsValid() = true for a different user")
	}
}

func TestNewTokenService_Config(t *testing.T) {
	if _, err := NewTokenService("%%%not-base64%%%", time.Hour); err == nil {
		t.Error("NewTokenService() should reject a non-base64 secret")
	}
	if _, err := NewTokenService("", time.Hour); err == nil {
		t.Error("NewTokenService() should reject an empty secret")
	}
	if _, err := NewTokenService(testSecret(t, "secret"), 0); err == nil {
		t.Error("NewTokenService() should reject a non-positive ttl")
	}
}
