package security

import (
	"strings"
	"testing"
	"time"

	"github.com/fitgear/storefront-backend/pkg/config"
)

func fastArgonConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	encoded, err := HashPassword("hunter22", fastArgonConfig())
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=19$") {
		t.Fatalf("unexpected format: %s", encoded)
	}

	ok, err := VerifyPassword("hunter22", encoded)
	if err != nil || !ok {
		t.Fatalf("expected match, ok=%v err=%v", ok, err)
	}

	ok, err = VerifyPassword("wrong", encoded)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatal("wrong password must not verify")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	t.Parallel()

	if _, err := HashPassword("", fastArgonConfig()); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	t.Parallel()

	if _, err := VerifyPassword("x", "$bcrypt$nope"); err == nil {
		t.Fatal("expected malformed hash error")
	}
}

func TestGenerateResetTokenEntropy(t *testing.T) {
	t.Parallel()

	a, err := GenerateResetToken(20)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := GenerateResetToken(20)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(a) != 40 || len(b) != 40 {
		t.Fatalf("expected 40 hex chars, got %d/%d", len(a), len(b))
	}
	if a == b {
		t.Fatal("tokens must be random")
	}

	// Requests below the floor still get 20 bytes.
	c, err := GenerateResetToken(4)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(c) != 40 {
		t.Fatalf("expected floor of 20 bytes, got %d hex chars", len(c))
	}
}

func TestIsResetTokenValid(t *testing.T) {
	t.Parallel()

	now := time.Now()
	token := "abc123"
	future := now.Add(30 * time.Minute)
	past := now.Add(-time.Minute)

	if !IsResetTokenValid(&token, &future, "abc123", now) {
		t.Fatal("valid token rejected")
	}
	if IsResetTokenValid(&token, &past, "abc123", now) {
		t.Fatal("expired token accepted")
	}
	if IsResetTokenValid(&token, &future, "zzz", now) {
		t.Fatal("mismatched token accepted")
	}
	if IsResetTokenValid(nil, &future, "abc123", now) {
		t.Fatal("cleared token accepted")
	}
	if IsResetTokenValid(&token, nil, "abc123", now) {
		t.Fatal("missing expiry accepted")
	}
	if IsResetTokenValid(&token, &future, "", now) {
		t.Fatal("empty supplied token accepted")
	}
}
