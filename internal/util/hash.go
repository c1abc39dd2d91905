package util

import (
	"crypto/sha256"
	"encoding/hex"
)

func SHA256Hex(b []byte) string {
	x := sha256.Sum256(b)
	return hex.EncodeToString(x[:])
}

// ShortHash is the first 16 hex characters of the SHA-256 of s.
func ShortHash(s string) string {
	return SHA256Hex([]byte(s))[:16]
}
