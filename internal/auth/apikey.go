package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashAPIKey returns the lowercase hex SHA-256 digest of raw. Config
// loading calls this once at startup and retains only the digest; the raw
// key is never stored past this call.
func HashAPIKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// KeyChecker compares an incoming raw API key against a key hashed once at
// config load.
type KeyChecker struct {
	hashedKey string
}

// NewKeyChecker returns a KeyChecker validating against hashedKey, the
// output of a prior HashAPIKey call.
func NewKeyChecker(hashedKey string) *KeyChecker {
	return &KeyChecker{hashedKey: hashedKey}
}

// Check hashes rawKey and compares it to the configured hash in constant
// time, reporting whether they match.
func (k *KeyChecker) Check(rawKey string) bool {
	if k == nil || k.hashedKey == "" {
		return false
	}
	candidate := HashAPIKey(rawKey)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(k.hashedKey)) == 1
}
