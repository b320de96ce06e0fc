package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashOpaqueToken returns the SHA-256 hex digest stored in place of a refresh or reset token.
func HashOpaqueToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CompareOpaqueTokenHash compares a plain token with its stored hash.
// The `token` parameter is the raw token string, not a hash.
func CompareOpaqueTokenHash(token string, storedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashOpaqueToken(token)), []byte(storedHash)) == 1
}
