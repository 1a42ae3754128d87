// Package dh implements the Diffie-Hellman key-exchange scheme (component
// D) parameterized over a prime field, grounded in
// original_source/jester_encryption's DiffieHellmanKeyExchangeScheme: the
// private key is a uniformly random field element, the public key is the
// generator raised to it, and the shared secret is the partner's public
// key raised to the local private key — all via modular exponentiation.
package dh

import (
	"fmt"
	"io"

	"github.com/silverline-crypto/mpctoolkit/field"
)

// KeyPair is a Diffie-Hellman private/public key pair over the field
// named by M.
type KeyPair[M field.Modulus] struct {
	Private field.Element[M]
	Public  field.Element[M]
}

// GenerateKeyPair samples a private key a uniformly from [0, p) and
// computes the public key generator^a mod p.
func GenerateKeyPair[M field.Modulus](r io.Reader, generator field.Element[M]) (KeyPair[M], error) {
	a, err := field.GenerateRandomMember[M](r)
	if err != nil {
		return KeyPair[M]{}, fmt.Errorf("dh: generating private key: %w", err)
	}
	pub := generator.ModPow(a.AsUint())
	return KeyPair[M]{Private: a, Public: pub}, nil
}

// SharedSecret computes partnerPublic^private mod p, the classic
// Diffie-Hellman shared value.
func SharedSecret[M field.Modulus](private, partnerPublic field.Element[M]) field.Element[M] {
	return partnerPublic.ModPow(private.AsUint())
}
