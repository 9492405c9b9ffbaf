package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"testing"
)

func TestPKCE(t *testing.T) {
	t.Run("GenerateVerifier", func(t *testing.T) {
		verifier, err := GenerateVerifier()
		if err != nil {
			t.Fatalf("failed to generate verifier: %v", err)
		}

		if len(verifier) < 43 || len(verifier) > 128 {
			t.Errorf("verifier length %d outside 43-128", len(verifier))
		}

		if _, err := base64.RawURLEncoding.DecodeString(verifier); err != nil {
			t.Errorf("verifier is not base64url without padding: %v", err)
		}

		second, err := GenerateVerifier()
		if err != nil {
			t.Fatalf("failed to generate second verifier: %v", err)
		}
		if verifier == second {
			t.Error("successive verifiers should differ")
		}
	})

	t.Run("Challenge", func(t *testing.T) {
		verifier := "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
		digest := sha256.Sum256([]byte(verifier))
		expected := base64.RawURLEncoding.EncodeToString(digest[:])

		if got := Challenge(verifier); got != expected {
			t.Errorf("expected challenge %s, got %s", expected, got)
		}

		if Challenge("a") == Challenge("b") {
			t.Error("different verifiers should produce different challenges")
		}
	})

	t.Run("GenerateState", func(t *testing.T) {
		state, err := GenerateState()
		if err != nil {
			t.Fatalf("failed to generate state: %v", err)
		}
		if state == "" {
			t.Fatal("state should not be empty")
		}

		second, err := GenerateState()
		if err != nil {
			t.Fatalf("failed to generate second state: %v", err)
		}
		if state == second {
			t.Error("successive state tokens should differ")
		}
	})
}
