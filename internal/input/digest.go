package input

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Digest returns the hex-encoded SHA3-256 of text.
func Digest(text string) string {
	sum := sha3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
