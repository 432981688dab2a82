package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret []byte, claims jwt.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestVerifierAcceptsValidToken(t *testing.T) {
	secret := []byte("super-secret-value")
	now := time.Now()
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}}
	signed := signToken(t, secret, claims)

	v := NewVerifier(secret)
	if _, err := v.Verify(signed); err != nil {
		t.Fatalf("expected valid token to verify, got %v", err)
	}
}

func TestVerifierRejectsWrongIssuer(t *testing.T) {
	secret := []byte("super-secret-value")
	now := time.Now()
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "someone-else",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}}
	signed := signToken(t, secret, claims)

	v := NewVerifier(secret)
	if _, err := v.Verify(signed); err == nil {
		t.Fatal("expected wrong-issuer token to fail verification")
	}
}

func TestVerifierRejectsExpiredToken(t *testing.T) {
	secret := []byte("super-secret-value")
	now := time.Now()
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
	}}
	signed := signToken(t, secret, claims)

	v := NewVerifier(secret)
	if _, err := v.Verify(signed); err == nil {
		t.Fatal("expected expired token to fail verification")
	}
}

func TestVerifierRejectsWrongSecret(t *testing.T) {
	now := time.Now()
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}}
	signed := signToken(t, []byte("secret-a-long-enough"), claims)

	v := NewVerifier([]byte("a-different-secret-value"))
	if _, err := v.Verify(signed); err == nil {
		t.Fatal("expected token signed with a different secret to fail verification")
	}
}

func TestKeyCheckerAcceptsMatchingKey(t *testing.T) {
	raw := "a-valid-api-key-value"
	checker := NewKeyChecker(HashAPIKey(raw))
	if !checker.Check(raw) {
		t.Fatal("expected matching key to pass")
	}
}

func TestKeyCheckerRejectsMismatchedKey(t *testing.T) {
	checker := NewKeyChecker(HashAPIKey("the-real-key-value"))
	if checker.Check("a-wrong-key-value") {
		t.Fatal("expected mismatched key to fail")
	}
}

func TestKeyCheckerNilCheckerRejectsEverything(t *testing.T) {
	var checker *KeyChecker
	if checker.Check("anything") {
		t.Fatal("expected nil KeyChecker to reject all keys")
	}
}
