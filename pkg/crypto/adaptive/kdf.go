// Package adaptive provides adaptive encryption with automatic algorithm selection.
package adaptive

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// MinSecretLength is the minimum length of a configured secret.
const MinSecretLength = 16

// KeyInfo is the HKDF info string binding derived keys to their use.
const KeyInfo = "snipboard/persist/v1"

// ErrSecretTooShort is returned for secrets below MinSecretLength.
var ErrSecretTooShort = errors.New("adaptive: secret too short (minimum 16 bytes)")

// DeriveKey stretches secret into a 32-byte key with HKDF-SHA256.
// The same secret and info always produce the same key.
func DeriveKey(secret []byte, info string) ([]byte, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrSecretTooShort
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("adaptive: derive key: %w", err)
	}
	return key, nil
}

// FromSecret derives a key from secret and builds a cipher of cipherType.
// An empty cipherType selects Preferred().
func FromSecret(secret string, cipherType CipherType) (Cipher, error) {
	key, err := DeriveKey([]byte(secret), KeyInfo)
	if err != nil {
		return nil, err
	}
	defer ZeroKey(key)

	if cipherType == "" {
		cipherType = Preferred()
	}
	return NewWithType(key, cipherType)
}

// ZeroKey overwrites key material in place.
func ZeroKey(key []byte) {
	for i := range key {
		key[i] = 0
	}
}
