package ratchet

import (
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/silverline-crypto/mpctoolkit/dh"
	"github.com/silverline-crypto/mpctoolkit/field"
	"github.com/silverline-crypto/mpctoolkit/hashkit"
)

// Scheme binds a Double Ratchet session to a concrete Diffie-Hellman
// field, hash, and AEAD cipher. It plays the role the teacher's djb and
// nist Ratchet realizations play, but is expressed over the field, dh and
// hashkit packages as external collaborators rather than a self-contained
// implementation: the Diffie-Hellman step is field.Element[M] modular
// exponentiation (see the dh package), and the KDF steps are HKDF/HMAC
// over a caller-chosen hash (see hashkit), keeping the underlying ratchet
// state machine oblivious to which field or hash was chosen.
type Scheme[M field.Modulus] struct {
	// Generator is the Diffie-Hellman generator for M.
	Generator field.Element[M]
	// Hash is the hash constructor used for HKDF and HMAC.
	Hash hashkit.New
	// mkInfo is the HKDF info used when deriving message keys.
	mkInfo []byte
	// rkInfo is the HKDF info used when deriving root keys.
	rkInfo []byte
}

// NewScheme builds a Scheme over the field named by M. namespace binds
// derived keys to a particular application or context, exactly as the
// teacher's DJB/NIST constructors do.
func NewScheme[M field.Modulus](generator field.Element[M], newHash hashkit.New, namespace string) Scheme[M] {
	return Scheme[M]{
		Generator: generator,
		Hash:      newHash,
		mkInfo:    []byte(namespace + "MessageKeys"),
		rkInfo:    []byte(namespace + "Ratchet"),
	}
}

// Generate creates a new Diffie-Hellman key pair, drawing entropy from r.
func (s Scheme[M]) Generate(r io.Reader) (PrivateKey[M], error) {
	kp, err := dh.GenerateKeyPair[M](r, s.Generator)
	if err != nil {
		return PrivateKey[M]{}, fmt.Errorf("ratchet: generating key pair: %w", err)
	}
	return PrivateKey[M]{value: kp.Private}, nil
}

// Public returns the public half of priv.
func (s Scheme[M]) Public(priv PrivateKey[M]) PublicKey[M] {
	return PublicKey[M]{value: s.Generator.ModPow(priv.value.AsUint())}
}

// DH computes the Diffie-Hellman shared value.
func (s Scheme[M]) DH(priv PrivateKey[M], pub PublicKey[M]) []byte {
	shared := dh.SharedSecret[M](priv.value, pub.value)
	return shared.AsUint().Bytes()
}

// KDFrk applies an HKDF keyed by the Diffie-Hellman output, salted by the
// current root key, to derive the next (root key, chain key) pair.
func (s Scheme[M]) KDFrk(rk RootKey, dhOut []byte) (RootKey, ChainKey, error) {
	out, err := hashkit.DeriveKey(s.Hash, rk, dhOut, s.rkInfo, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("ratchet: deriving root/chain keys: %w", err)
	}
	return RootKey(out[0:32:32]), ChainKey(out[32:64:64]), nil
}

// KDFck advances a chain key one step, returning the next chain key and a
// message key.
func (s Scheme[M]) KDFck(ck ChainKey) (ChainKey, MessageKey) {
	const (
		ckConst = 0x02
		mkConst = 0x01
	)
	nck := hashkit.HMAC(s.Hash, ck, []byte{ckConst})
	mk := hashkit.HMAC(s.Hash, ck, []byte{mkConst})
	return nck, mk
}

// derive expands a message key into a 256-bit XChaCha20-Poly1305 key and
// 192-bit nonce, mirroring the teacher's djb.derive.
func (s Scheme[M]) derive(ikm []byte) (key, nonce []byte, err error) {
	const (
		K = chacha20poly1305.KeySize
		N = chacha20poly1305.NonceSizeX
	)
	out, err := hashkit.DeriveKey(s.Hash, nil, ikm, s.mkInfo, K+N)
	if err != nil {
		return nil, nil, fmt.Errorf("ratchet: deriving message key/nonce: %w", err)
	}
	return out[0:K:K], out[K : K+N : K+N], nil
}

// Seal encrypts and authenticates plaintext, authenticating
// additionalData alongside it.
func (s Scheme[M]) Seal(key MessageKey, plaintext, additionalData []byte) ([]byte, error) {
	k, nonce, err := s.derive(key)
	if err != nil {
		return nil, err
	}
	defer wipe(k)

	aead, err := chacha20poly1305.NewX(k)
	if err != nil {
		return nil, fmt.Errorf("ratchet: constructing AEAD: %w", err)
	}
	return aead.Seal(nil, nonce, plaintext, additionalData), nil
}

// Open decrypts and authenticates ciphertext, authenticating
// additionalData alongside it.
func (s Scheme[M]) Open(key MessageKey, ciphertext, additionalData []byte) ([]byte, error) {
	k, nonce, err := s.derive(key)
	if err != nil {
		return nil, err
	}
	defer wipe(k)

	aead, err := chacha20poly1305.NewX(k)
	if err != nil {
		return nil, fmt.Errorf("ratchet: constructing AEAD: %w", err)
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, additionalData)
	if err != nil {
		return nil, fmt.Errorf("ratchet: opening message: %w", err)
	}
	return plaintext, nil
}

// Header creates a message header from the key pair, previous chain
// length, and current message number.
func (s Scheme[M]) Header(priv PrivateKey[M], prevChainLength, messageNum int) Header[M] {
	return Header[M]{
		PublicKey: s.Public(priv),
		PN:        prevChainLength,
		N:         messageNum,
	}
}
