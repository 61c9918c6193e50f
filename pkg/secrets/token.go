package secrets

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/pkg/errors"
)

const (
	// DefaultEntropy is the number of random bytes behind a regular secret.
	DefaultEntropy = 32
	// HighEntropy is used for long-lived API tokens.
	HighEntropy = 64
)

// Token returns n cryptographically random bytes encoded as unpadded
// URL-safe base64, i.e. only [A-Za-z0-9_-] characters.
func Token(n int) (string, error) {
	if n <= 0 {
		return "", errors.Errorf("invalid token entropy %d", n)
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "reading random bytes")
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// EncodedLen is the length of a token generated with n bytes of entropy.
func EncodedLen(n int) int {
	return base64.RawURLEncoding.EncodedLen(n)
}
