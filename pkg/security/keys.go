// Package security contains everything related to the security of user data
package security

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const keySize = 32

var ErrEmptySecret = errors.New("no secret provided")

// DeriveKey expands the application secret into a subkey bound to purpose, so
// one configured secret can safely back several independent primitives
func DeriveKey(secret, purpose string) ([]byte, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("review-api/"+purpose))

	key := make([]byte, keySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("failed to derive %s key, %w", purpose, err)
	}

	return key, nil
}
