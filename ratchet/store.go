package ratchet

import (
	"errors"
	"fmt"

	"github.com/silverline-crypto/mpctoolkit/field"
)

// ErrNotFound is returned by a Store when a message key is not found.
var ErrNotFound = errors.New("ratchet: key not found")

// ErrTooManySkipped is returned by StoreKey once more than a store's
// configured maximum number of skipped message keys are held at once.
var ErrTooManySkipped = errors.New("ratchet: too many skipped messages")

// Store persists session state and skipped message keys, external to this
// package per this toolkit's external-collaborator boundary around
// persistence.
type Store[M field.Modulus] interface {
	// Save persists the current session state.
	Save(s *State[M]) error
	// StoreKey stores a skipped message's key under the (Nr, PublicKey)
	// tuple. StoreKey must return an error once too many keys have been
	// skipped.
	StoreKey(Nr int, pub PublicKey[M], key MessageKey) error
	// LoadKey retrieves a message key by the (Nr, PublicKey) tuple, or
	// returns ErrNotFound.
	LoadKey(Nr int, pub PublicKey[M]) (MessageKey, error)
	// DeleteKey removes a message key by the (Nr, PublicKey) tuple.
	DeleteKey(Nr int, pub PublicKey[M]) error
}

// memoryStore is an in-memory Store, used by default when a Session is
// constructed without WithStore.
type memoryStore[M field.Modulus] struct {
	maxSkip int
	keys    map[string]MessageKey
}

var _ Store[field.Mersenne61Modulus] = (*memoryStore[field.Mersenne61Modulus])(nil)

func (*memoryStore[M]) key(Nr int, pub PublicKey[M]) string {
	return fmt.Sprintf("%d:%x", Nr, pub.Bytes())
}

func (m *memoryStore[M]) Save(*State[M]) error { return nil }

func (m *memoryStore[M]) StoreKey(Nr int, pub PublicKey[M], key MessageKey) error {
	if m.keys == nil {
		m.keys = make(map[string]MessageKey)
	}
	if len(m.keys) > m.maxSkip {
		return ErrTooManySkipped
	}
	m.keys[m.key(Nr, pub)] = key
	return nil
}

func (m *memoryStore[M]) LoadKey(Nr int, pub PublicKey[M]) (MessageKey, error) {
	key, ok := m.keys[m.key(Nr, pub)]
	if !ok {
		return nil, ErrNotFound
	}
	return key, nil
}

func (m *memoryStore[M]) DeleteKey(Nr int, pub PublicKey[M]) error {
	delete(m.keys, m.key(Nr, pub))
	return nil
}
