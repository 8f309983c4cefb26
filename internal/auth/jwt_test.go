package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndVerify(t *testing.T) {
	m := NewManager("test-secret", 7*24*time.Hour)

	raw, err := m.Generate("user-1", "alice@example.com")

	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := m.Verify(raw)

	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("expected user-1, got %q", claims.UserID)
	}

	if claims.Email != "alice@example.com" {
		t.Errorf("expected alice@example.com, got %q", claims.Email)
	}

	exp := claims.ExpiresAt.Time
	want := time.Now().UTC().Add(7 * 24 * time.Hour)

	if exp.Before(want.Add(-time.Minute)) || exp.After(want.Add(time.Minute)) {
		t.Errorf("expiry not ~7 days out: %v", exp)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	m := NewManager("test-secret", -time.Hour)

	// Signed with the right secret but already expired.
	raw, err := m.Generate("user-1", "alice@example.com")

	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, err = m.Verify(raw)

	if err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	m := NewManager("secret-a", time.Hour)
	other := NewManager("secret-b", time.Hour)

	raw, err := m.Generate("user-1", "alice@example.com")

	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, err = other.Verify(raw)

	if err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestVerifyRejectsNonHMAC(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	// alg=none tokens must never pass.
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "user-1"})
	raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)

	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	_, err = m.Verify(raw)

	if err == nil {
		t.Fatal("expected none-alg token to be rejected")
	}
}

func TestVerifyRejectsTampered(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	raw, err := m.Generate("user-1", "alice@example.com")

	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parts := strings.Split(raw, ".")

	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", raw)
	}

	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	_, err = m.Verify(tampered)

	if err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
}
