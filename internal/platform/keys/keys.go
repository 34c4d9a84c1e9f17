// Package keys derives independent fixed-size keys from the single configured
// SESSION_SECRET, one per purpose.
package keys

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	PurposeCookieHash  = "edutax/session/cookie-hash"
	PurposeCookieBlock = "edutax/session/cookie-block"
	PurposeOAuthState  = "edutax/auth/oauth-state"
)

func Derive(secret []byte, purpose string, size int) ([]byte, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("derive %s: empty secret", purpose)
	}
	out := make([]byte, size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(purpose)), out); err != nil {
		return nil, fmt.Errorf("derive %s: %w", purpose, err)
	}
	return out, nil
}

// MustDerive panics on error. Only call it with a secret already validated as non-empty.
func MustDerive(secret []byte, purpose string, size int) []byte {
	k, err := Derive(secret, purpose, size)
	if err != nil {
		panic(err)
	}
	return k
}
