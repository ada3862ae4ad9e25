package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashRefreshToken digests a raw refresh token with SHA-256. Only the digest
// is stored; the raw token lives solely in the client's cookie.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CompareRefreshTokenHash reports whether the raw token presented by the
// client matches the stored digest.
func CompareRefreshTokenHash(token string, storedHash string) bool {
	return HashRefreshToken(token) == storedHash
}
