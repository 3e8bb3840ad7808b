package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
)

// TokensEqual compares two secrets in constant time. Both sides are hashed
// first so the comparison does not leak their lengths.
func TokensEqual(a, b string) bool {
	fa := sha256.Sum256([]byte(a))
	fb := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(fa[:], fb[:]) == 1
}
