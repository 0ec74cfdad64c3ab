// Package cryptox seals small secrets (the session token) for storage at rest.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// KeySize is the AES-256 key length produced by DeriveKey.
const KeySize = 32

var ErrKeySize = errors.New("invalid key size")

// RandomBytes returns n bytes from crypto/rand.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("read random: %w", err)
	}
	return b, nil
}

// DeriveKey expands a high-entropy secret into a KeySize-byte key with
// HKDF-SHA256. info binds the key to its purpose. Not for passwords.
func DeriveKey(secret, info []byte) ([]byte, error) {
	if len(secret) < KeySize {
		return nil, fmt.Errorf("secret length %d: %w", len(secret), ErrKeySize)
	}
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, info), key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return key, nil
}

// Seal encrypts plaintext with AES-GCM under key. A fresh random nonce is
// generated on every call and returned next to the ciphertext.
func Seal(plaintext, key []byte) (ciphertext, nonce []byte, err error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	nonce, err = RandomBytes(aesgcm.NonceSize())
	if err != nil {
		return nil, nil, err
	}

	return aesgcm.Seal(nil, nonce, plaintext, nil), nonce, nil
}

// Open reverses Seal. It fails if the key, nonce or ciphertext do not match.
func Open(ciphertext, nonce, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aesgcm.NonceSize() {
		return nil, fmt.Errorf("nonce length %d: %w", len(nonce), ErrKeySize)
	}
	return aesgcm.Open(nil, nonce, ciphertext, nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("key length %d: %w", len(key), ErrKeySize)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Wipe zeroes b in place. Nil is fine.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
