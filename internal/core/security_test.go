// AngelaMos | 2026
// security_test.go

package core

import (
	"strings"
	"testing"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format: %q", hash)
	}

	valid, err := VerifyPassword("correct horse battery staple", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !valid {
		t.Error("correct password rejected")
	}

	valid, err = VerifyPassword("wrong password", hash)
	if err != nil {
		t.Fatalf("verify wrong: %v", err)
	}
	if valid {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	a, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if a == b {
		t.Error("two hashes of the same password must differ")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("anything", "not-a-phc-string"); err == nil {
		t.Error("expected error for malformed hash")
	}
}

func TestVerifyPasswordTimingSafeNoAccount(t *testing.T) {
	valid, newHash, err := VerifyPasswordTimingSafe("anything", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if valid {
		t.Error("nil hash must never verify")
	}
	if newHash != "" {
		t.Error("nil hash must never produce a rehash")
	}
}

func TestVerifyPasswordTimingSafeMatch(t *testing.T) {
	hash, err := HashPassword("pa55word-pa55word")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	valid, _, err := VerifyPasswordTimingSafe("pa55word-pa55word", &hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !valid {
		t.Error("correct password rejected")
	}
}

func TestGenerateSecureToken(t *testing.T) {
	a, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if a == "" || a == b {
		t.Error("tokens must be non-empty and unique")
	}
}

func TestHashTokenDeterministic(t *testing.T) {
	token, err := GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if HashToken(token) != HashToken(token) {
		t.Error("token hash must be deterministic")
	}

	if !CompareTokenHash(token, HashToken(token)) {
		t.Error("token must match its own hash")
	}
	if CompareTokenHash("other", HashToken(token)) {
		t.Error("different token must not match")
	}
}
