package security

import (
	"crypto/rand"
	"encoding/base64"
)

func NewRandomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// NewSessionID returns an opaque identifier with 256 bits of entropy.
func NewSessionID() (string, error) {
	return NewRandomString(32)
}
