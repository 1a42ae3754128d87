// Package ratchet implements the Double Ratchet Algorithm (component N),
// mostly paraphrased from the whitepaper [signal].
//
// Double Ratchet Algorithm
//
// The Double Ratchet Algorithm is comprised of two "ratchets" over three
// KDF chains. A ratchet is a construction where each step forward is
// constructed with a one-way function, making it impossible to recover
// previous keys (forward secrecy).
//
// KDF Chains
//
// A KDF chain is a construction where part of the output of the KDF is
// used to key the next invocation of the KDF, and the rest is used for
// some other purpose (like message encryption). In a session both parties
// have three chains: a root chain, a sending chain, and a receiving
// chain. Each party's sending chain matches the other's receiving chain,
// and the root chain is shared.
//
// Diffie-Hellman Ratchet
//
// Both parties hold an ephemeral ratchet key pair over a shared prime
// field (see the field package). Every message carries the sender's
// current ratchet public key. When a party receives a message carrying a
// public key it has not seen before, it performs a Diffie-Hellman ratchet
// step: the shared value with that key starts a new receiving chain, and
// the party generates a new key pair whose shared value with the same
// peer key starts a new sending chain.
//
// This package does not implement encrypted headers.
//
// References
//
//	[signal]: https://signal.org/docs/specifications/doubleratchet/doubleratchet.pdf
package ratchet

import (
	"encoding/binary"
	"fmt"

	"github.com/silverline-crypto/mpctoolkit/field"
)

// RootKey is a key generated by each step in the root chain. RootKeys are
// always 32 bytes.
type RootKey []byte

// ChainKey is an ephemeral key used to key the KDF that produces message
// keys. ChainKeys are always 32 bytes.
type ChainKey []byte

// MessageKey is an ephemeral key used to encrypt a single message.
// MessageKeys are always 32 bytes.
type MessageKey []byte

// PrivateKey is a Diffie-Hellman private key over the field M.
type PrivateKey[M field.Modulus] struct {
	value field.Element[M]
}

// PublicKey is a Diffie-Hellman public key over the field M.
type PublicKey[M field.Modulus] struct {
	value field.Element[M]
}

// Bytes renders the public key's residue for header transmission.
func (p PublicKey[M]) Bytes() []byte { return p.value.AsUint().Bytes() }

// Equal reports whether two public keys carry the same residue.
func (p PublicKey[M]) Equal(o PublicKey[M]) bool { return p.value.Equal(o.value) }

// publicKeyFromBytes parses a public key previously produced by Bytes.
func publicKeyFromBytes[M field.Modulus](b []byte) PublicKey[M] {
	return PublicKey[M]{value: field.FromBigUint[M](bytesToBigInt(b))}
}

// Header is generated alongside each message.
type Header[M field.Modulus] struct {
	// PublicKey is the sender's new ratchet public key.
	PublicKey PublicKey[M]
	// PN is the previous sending chain's length.
	PN int
	// N is the current message number.
	N int
}

// Append serializes the Header and appends it to buf.
func (h Header[M]) Append(buf []byte) []byte {
	n := len(buf)
	pub := h.PublicKey.Bytes()
	buf = append(buf, make([]byte, 16+len(pub))...)
	binary.BigEndian.PutUint64(buf[n:n+8], uint64(h.PN))
	binary.BigEndian.PutUint64(buf[n+8:n+16], uint64(h.N))
	copy(buf[n+16:], pub)
	return buf
}

// Decode deserializes a Header from data.
func (h *Header[M]) Decode(data []byte) error {
	if len(data) < 16 {
		return fmt.Errorf("ratchet: invalid header length: %d", len(data))
	}
	h.PN = int(binary.BigEndian.Uint64(data[0:8]))
	h.N = int(binary.BigEndian.Uint64(data[8:16]))
	h.PublicKey = publicKeyFromBytes[M](data[16:])
	return nil
}

// Concat encodes a message header and prepends the additional data, so
// the two can be told apart unambiguously before MAC computation.
func Concat[M field.Modulus](additionalData []byte, h Header[M]) []byte {
	const max64 = binary.MaxVarintLen64
	pub := h.PublicKey.Bytes()
	buf := make([]byte, 0, max64+len(additionalData)+16+len(pub))
	i := binary.PutVarint(buf[:max64], int64(len(additionalData)))
	buf = append(buf[:i], additionalData...)
	buf = h.Append(buf)
	return buf
}
