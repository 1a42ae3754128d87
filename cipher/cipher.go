// Package cipher specifies the symmetric encryption contract this toolkit's
// higher-level protocols consume (component E), and wires a default
// realization to golang.org/x/crypto/chacha20poly1305, the same AEAD the
// teacher's djb.go Ratchet realization uses.
//
// Symmetric cipher implementations themselves are out of this toolkit's
// scope per the spec's Non-goals; XChaCha20Poly1305 below is a thin
// adapter over a trusted library, not a reimplementation.
package cipher

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// Scheme is the symmetric encryption contract: a key space, encrypt, and
// decrypt.
type Scheme interface {
	GenerateKey(r io.Reader) ([]byte, error)
	Encrypt(key, plaintext []byte) ([]byte, error)
	Decrypt(key, ciphertext []byte) ([]byte, error)
}

// XChaCha20Poly1305 is the default Scheme realization. Ciphertexts are
// the AEAD seal output prefixed with the random nonce used to produce it.
type XChaCha20Poly1305 struct{}

var _ Scheme = XChaCha20Poly1305{}

// GenerateKey returns a fresh 256-bit key drawn from r.
func (XChaCha20Poly1305) GenerateKey(r io.Reader) ([]byte, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("cipher: generating key: %w", err)
	}
	return key, nil
}

// Encrypt seals plaintext under key with a random nonce, prepending the
// nonce to the returned ciphertext.
func (XChaCha20Poly1305) Encrypt(key, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("cipher: constructing AEAD: %w", err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("cipher: generating nonce: %w", err)
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens a ciphertext produced by Encrypt.
func (XChaCha20Poly1305) Decrypt(key, ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("cipher: constructing AEAD: %w", err)
	}
	if len(ciphertext) < aead.NonceSize() {
		return nil, fmt.Errorf("cipher: ciphertext shorter than nonce")
	}
	nonce, sealed := ciphertext[:aead.NonceSize()], ciphertext[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("cipher: opening ciphertext: %w", err)
	}
	return plaintext, nil
}
