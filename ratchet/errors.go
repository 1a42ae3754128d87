package ratchet

import "errors"

// ErrInvalidMessageHeader indicates an inbound message header is
// inconsistent with local state: it claims a new ratchet public key but
// its previous_chain_length is smaller than the receiving chain length
// already reached, which cannot happen from an honest sender.
var ErrInvalidMessageHeader = errors.New("ratchet: invalid message header")

// ErrUnknownMessage indicates an inbound message is older than the
// current receiving chain position, but no buffered key exists for it
// (it was never skipped, or its key has already been consumed).
var ErrUnknownMessage = errors.New("ratchet: unknown message")

// OutOfOrderError is returned by Open alongside a valid plaintext when
// the message was decrypted using a key buffered earlier for exactly
// this purpose: the message is authentic, but it arrived after a later
// message was already processed. It is not a fault; callers that care
// about delivery order can detect it with errors.As.
type OutOfOrderError struct {
	// Plaintext is the same value Open also returns directly.
	Plaintext []byte
}

func (e *OutOfOrderError) Error() string {
	return "ratchet: message decrypted out of order"
}
