// Package hashkit specifies the hash/HMAC/HKDF contracts this toolkit's
// higher-level protocols consume, and wires them to trusted library
// realizations.
//
// Hash implementations themselves (MD5, SHA-1, BLAKE2b/s) are out of this
// toolkit's scope per the spec's Non-goals; this package only names the
// contract — a hash constructor shaped like hash.Hash — and the two
// derived constructions (HMAC, HKDF) built generically on top of it,
// exactly as the teacher's djb.go and nist.go parameterize their Ratchet
// realizations by a `func() hash.Hash` rather than a concrete algorithm.
package hashkit

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"hash"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"
)

// New is the hash contract: a constructor for a fresh, ready-to-use
// hash.Hash. hash.Hash already exposes Write (update), Sum (finish), Reset
// (re-init), Size (output size), and BlockSize — so it is used verbatim as
// this toolkit's block-hash contract rather than re-declared.
type New func() hash.Hash

// SHA256 is a New realization backed by crypto/sha256, used by the
// ratchet package's Scheme realization.
func SHA256() hash.Hash { return sha256.New() }

// BLAKE2b256 is a New realization backed by golang.org/x/crypto/blake2b,
// grounded in Tomsons-go-srp's choice of BLAKE2b-256 as its default SRP
// hash. blake2b.New256 never returns an error for a nil key, so it panics
// on the (unreachable) error path rather than threading an error back
// through the New contract.
func BLAKE2b256() hash.Hash {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(fmt.Sprintf("hashkit: blake2b.New256: %v", err))
	}
	return h
}

// DigestMessage is the init/update/finish convenience: equivalent to
// constructing h, writing data, and finishing.
func DigestMessage(newHash New, data []byte) []byte {
	h := newHash()
	h.Write(data)
	return h.Sum(nil)
}

// HMAC computes HMAC(key, message) using the given hash constructor, per
// the standard HMAC construction: H((K' ^ opad) || H((K' ^ ipad) || m)).
func HMAC(newHash New, key, message []byte) []byte {
	mac := hmac.New(newHash, key)
	mac.Write(message)
	return mac.Sum(nil)
}

// DeriveKey runs HKDF-Extract-then-Expand with the given hash constructor,
// salt, input keying material, and context info, producing length bytes of
// output keying material.
//
// prk = HMAC(salt, ikm); output = HKDF-Expand(prk, info, length).
func DeriveKey(newHash New, salt, ikm, info []byte, length int) ([]byte, error) {
	r := hkdf.New(newHash, ikm, salt, info)
	out := make([]byte, length)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, fmt.Errorf("hashkit: HKDF derive: %w", err)
	}
	return out, nil
}
