package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewService("secret", time.Minute, time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "alice", "user")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != userID || claims.Username != "alice" || claims.Role != "user" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestExpiredAccessToken(t *testing.T) {
	svc := NewService("secret", -time.Minute, time.Hour)

	token, err := svc.GenerateAccessToken(uuid.New(), "alice", "user")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := svc.ValidateAccessToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	issuer := NewService("secret-a", time.Minute, time.Hour)
	verifier := NewService("secret-b", time.Minute, time.Hour)

	token, err := issuer.GenerateAccessToken(uuid.New(), "alice", "user")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := verifier.ValidateAccessToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRefreshTokenOpaque(t *testing.T) {
	a, err := GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	b, err := GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if a == b {
		t.Fatal("refresh tokens must be unique")
	}
	if len(a) != 64 {
		t.Fatalf("expected 32 random bytes hex encoded, got length %d", len(a))
	}

	// Refresh tokens are not access tokens.
	svc := NewService("secret", time.Minute, time.Hour)
	if _, err := svc.ValidateAccessToken(a); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for opaque token, got %v", err)
	}
}

func TestHashRefreshTokenStable(t *testing.T) {
	if HashRefreshToken("token") != HashRefreshToken("token") {
		t.Fatal("hash must be deterministic")
	}
	if HashRefreshToken("token") == HashRefreshToken("other") {
		t.Fatal("distinct tokens must hash differently")
	}
}
