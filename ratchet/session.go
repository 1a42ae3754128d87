package ratchet

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/silverline-crypto/mpctoolkit/field"
)

// defaultMaxSkip is the default maximum number of message keys a Session
// will hold for out-of-order delivery before refusing to skip further.
const defaultMaxSkip = 1000

// Session encapsulates an asynchronous Double Ratchet conversation with a
// single peer.
type Session[M field.Modulus] struct {
	scheme Scheme[M]
	state  *State[M]
	store  Store[M]
}

// Option configures a Session.
type Option[M field.Modulus] func(*Session[M])

// WithStore configures the backing store used for saved state and skipped
// message keys. By default skipped keys live only in memory and session
// state is not persisted across process restarts.
func WithStore[M field.Modulus](store Store[M]) Option[M] {
	return func(s *Session[M]) {
		s.store = store
	}
}

func applyOptions[M field.Modulus](s *Session[M], opts []Option[M]) {
	for _, fn := range opts {
		fn(s)
	}
	if s.store == nil {
		s.store = &memoryStore[M]{maxSkip: defaultMaxSkip}
	}
}

// Resume continues a previously Saved Session from its persisted state.
func Resume[M field.Modulus](scheme Scheme[M], state *State[M], opts ...Option[M]) (*Session[M], error) {
	s := &Session[M]{scheme: scheme, state: state}
	applyOptions(s, opts)
	return s, nil
}

// NewSend creates the Established side of a conversation: the party that
// responds to a peer's hello. peer is the ratchet public key carried by
// the peer's Hello message. sk is a shared secret negotiated with the
// peer ahead of time, e.g. via the dh package.
func NewSend[M field.Modulus](scheme Scheme[M], sk []byte, peer PublicKey[M], opts ...Option[M]) (*Session[M], error) {
	s := &Session[M]{scheme: scheme}
	applyOptions(s, opts)

	priv, err := scheme.Generate(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("ratchet: NewSend: generating key pair: %w", err)
	}
	rk, ck, err := scheme.KDFrk(RootKey(sk), scheme.DH(priv, peer))
	if err != nil {
		return nil, fmt.Errorf("ratchet: NewSend: deriving root key: %w", err)
	}
	s.state = &State[M]{
		DHs:    priv,
		DHr:    peer,
		dhrSet: true,
		RK:     rk,
		CKs:    ck,
	}
	return s, nil
}

// NewRecv creates the Initiator side of a conversation: the party that
// sends its ratchet public key in a Hello and waits for the peer's first
// message. The peer's ratchet public key is not yet known. It becomes
// known, and the receiving chain begins, once the first message is
// Open'd. sk is the same shared secret passed to the peer's NewSend.
func NewRecv[M field.Modulus](scheme Scheme[M], sk []byte, priv PrivateKey[M], opts ...Option[M]) (*Session[M], error) {
	s := &Session[M]{scheme: scheme}
	applyOptions(s, opts)
	s.state = &State[M]{
		DHs: priv,
		RK:  RootKey(sk),
	}
	return s, nil
}

// Message is produced by Session.Seal, or by Session.Hello for the first
// message an Initiator (a Session created by NewRecv) sends. Ciphertext is
// nil for a hello: the Initiator has no sending chain yet, since that
// requires the peer's ratchet public key, so the hello carries only the
// header needed to establish one.
type Message[M field.Modulus] struct {
	Header     Header[M]
	Ciphertext []byte
}

// Hello returns the on-the-wire message an Initiator must send before the
// conversation can begin: its ratchet public key with no ciphertext. The
// peer passes Header.PublicKey to NewSend to become Established and derive
// the shared root and sending chain.
func (s *Session[M]) Hello() Message[M] {
	return Message[M]{Header: s.scheme.Header(s.state.DHs, s.state.PN, s.state.Ns)}
}

// Seal encrypts and authenticates plaintext, authenticates additionalData
// alongside it, and returns the resulting message.
func (s *Session[M]) Seal(plaintext, additionalData []byte) (Message[M], error) {
	state := s.state
	if !state.dhrSet {
		return Message[M]{}, fmt.Errorf("ratchet: cannot seal: peer's ratchet public key is not yet known, call Open first")
	}

	cks, mk := s.scheme.KDFck(state.CKs)
	h := s.scheme.Header(state.DHs, state.PN, state.Ns)
	ad := Concat(additionalData, h)

	ciphertext, err := s.scheme.Seal(mk, plaintext, ad)
	if err != nil {
		return Message[M]{}, fmt.Errorf("ratchet: sealing message: %w", err)
	}
	msg := Message[M]{Header: h, Ciphertext: ciphertext}

	if err := s.store.Save(s.state); err != nil {
		return Message[M]{}, fmt.Errorf("ratchet: saving state: %w", err)
	}
	state.CKs = cks
	state.Ns++
	return msg, nil
}

// Open decrypts and authenticates a Message, authenticates additionalData
// alongside it, and returns the resulting plaintext. Open transparently
// handles out-of-order delivery and the Diffie-Hellman ratchet step
// triggered by a new peer public key, reporting one of four outcomes:
//
//   - plaintext, nil: an in-order message decrypted against the current
//     receiving chain.
//   - plaintext, *OutOfOrderError: the message decrypted successfully using
//     a key buffered earlier because it arrived after a later message. The
//     plaintext is authentic; errors.As distinguishes this from the above.
//   - nil, error wrapping ErrUnknownMessage: the message is older than the
//     current receiving chain position, but no key was ever buffered for
//     it.
//   - nil, error wrapping ErrInvalidMessageHeader: the header claims a
//     ratchet public key not yet seen, but a previous_chain_length smaller
//     than the receiving chain already reached, which an honest sender
//     cannot produce.
func (s *Session[M]) Open(msg Message[M], additionalData []byte) ([]byte, error) {
	if msg.Ciphertext == nil {
		return nil, fmt.Errorf("ratchet: cannot open a hello message with no ciphertext")
	}
	h := msg.Header
	ad := Concat(additionalData, h)

	switch mk, err := s.store.LoadKey(h.N, h.PublicKey); {
	case err == nil:
		plaintext, err := s.scheme.Open(mk, msg.Ciphertext, ad)
		if err != nil {
			return nil, err
		}
		if err := s.store.DeleteKey(h.N, h.PublicKey); err != nil {
			wipe(plaintext)
			return nil, fmt.Errorf("ratchet: deleting skipped key: %w", err)
		}
		return plaintext, &OutOfOrderError{Plaintext: plaintext}
	case errors.Is(err, ErrNotFound):
		// fall through to classification below.
	default:
		return nil, err
	}

	sameKey := s.state.dhrSet && h.PublicKey.Equal(s.state.DHr)
	switch {
	case sameKey && h.N < s.state.Nr:
		return nil, fmt.Errorf("ratchet: %w", ErrUnknownMessage)
	case !sameKey && s.state.dhrSet && h.PN < s.state.Nr:
		return nil, fmt.Errorf("ratchet: %w", ErrInvalidMessageHeader)
	}

	tmp := s.state.Clone()

	if !sameKey {
		if err := tmp.skip(s.store, s.scheme, h.PN); err != nil {
			return nil, err
		}
		if err := tmp.ratchet(s.scheme, h.PublicKey); err != nil {
			return nil, fmt.Errorf("ratchet: advancing DH ratchet: %w", err)
		}
	}
	if err := tmp.skip(s.store, s.scheme, h.N); err != nil {
		return nil, err
	}

	var mk MessageKey
	tmp.CKr, mk = s.scheme.KDFck(tmp.CKr)
	tmp.Nr++

	plaintext, err := s.scheme.Open(mk, msg.Ciphertext, ad)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(tmp); err != nil {
		wipe(plaintext)
		return nil, fmt.Errorf("ratchet: saving state: %w", err)
	}
	s.state.wipe()
	s.state = tmp
	return plaintext, nil
}
