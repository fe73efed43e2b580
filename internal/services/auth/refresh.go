package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashRefreshToken is the only representation of a refresh token the store
// ever sees. Lookups hash the caller-supplied raw token first; raw values are
// never compared server-side.
func HashRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
