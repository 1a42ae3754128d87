package ratchet

import (
	"crypto/rand"
	"runtime"

	"github.com/silverline-crypto/mpctoolkit/field"
)

// State is the current state of a session.
type State[M field.Modulus] struct {
	// DHs is the sending (self) ratchet key pair.
	DHs PrivateKey[M]
	// DHr is the peer's ratchet public key. It is meaningful only while
	// dhrSet is true.
	DHr PublicKey[M]
	// dhrSet reports whether DHr has been assigned, since PublicKey's
	// zero value is not otherwise distinguishable from a real key.
	dhrSet bool
	// RK is the current root key.
	RK RootKey
	// CKs is the sending chain key.
	CKs ChainKey
	// CKr is the receiving chain key.
	CKr ChainKey
	// Ns is the sending message number.
	Ns int
	// Nr is the receiving message number.
	Nr int
	// PN is the number of messages in the previous sending chain.
	PN int
}

// Clone performs a deep copy of the session state.
func (s *State[M]) Clone() *State[M] {
	return &State[M]{
		DHs:    s.DHs,
		DHr:    s.DHr,
		dhrSet: s.dhrSet,
		RK:     append(RootKey(nil), s.RK...),
		CKs:    append(ChainKey(nil), s.CKs...),
		CKr:    append(ChainKey(nil), s.CKr...),
		Ns:     s.Ns,
		Nr:     s.Nr,
		PN:     s.PN,
	}
}

// wipe zeros the byte-backed secrets held in s. DHs and DHr hold immutable
// field elements rather than mutable byte buffers, so they are left for
// the garbage collector rather than zeroed in place.
func (s *State[M]) wipe() {
	wipe(s.RK)
	wipe(s.CKs)
	wipe(s.CKr)
}

// skip marks each message in [state.Nr, until) as skipped, stashing their
// message keys in store for out-of-order delivery.
func (s *State[M]) skip(store Store[M], scheme Scheme[M], until int) error {
	if s.CKr == nil {
		return nil
	}
	for s.Nr < until {
		var mk MessageKey
		s.CKr, mk = scheme.KDFck(s.CKr)
		if err := store.StoreKey(s.Nr, s.DHr, mk); err != nil {
			return err
		}
		s.Nr++
	}
	return nil
}

// ratchet advances the Diffie-Hellman ratchet to a newly learned peer
// public key, resetting the sending and receiving chains.
func (s *State[M]) ratchet(scheme Scheme[M], pub PublicKey[M]) error {
	s.PN = s.Ns
	s.Ns = 0
	s.Nr = 0
	s.DHr = pub
	s.dhrSet = true

	rk, ckr, err := scheme.KDFrk(s.RK, scheme.DH(s.DHs, s.DHr))
	if err != nil {
		return err
	}
	s.RK, s.CKr = rk, ckr

	priv, err := scheme.Generate(rand.Reader)
	if err != nil {
		return err
	}
	s.DHs = priv

	rk, cks, err := scheme.KDFrk(s.RK, scheme.DH(s.DHs, s.DHr))
	if err != nil {
		return err
	}
	s.RK, s.CKs = rk, cks
	return nil
}

//go:noinline
func wipe(p []byte) {
	for i := range p {
		p[i] = 0
	}
	runtime.KeepAlive(p)
}
