package clique

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"

	"github.com/silverline-crypto/mpctoolkit/field"
	"github.com/silverline-crypto/mpctoolkit/shamir"
)

// InMemoryClique is a Transport realization for tests and single-process
// simulations: N parties exchange shares through shared Go channels
// instead of a network. It is not meant for production use.
//
// Every RevealShare/DistributeSecret call is tagged with the caller's own
// call sequence number (its round), keyed together with the destination
// party, so that messages from parties running at different speeds never
// get interleaved across rounds: a channel exists per (destination,
// round) pair, created lazily, so receivers only ever drain the messages
// meant for the round they are currently waiting on. This relies on every
// party issuing the same NUMBER of reveal/distribute calls in the same
// relative order, true of every joint primitive in this toolkit's mpc
// package since none of them branch on a party's identity.
type InMemoryClique[M field.Modulus] struct {
	n               int
	mu              sync.Mutex
	revealChans     map[string]chan shamir.Share[M]
	distributeChans map[string]chan shamir.Share[M]
}

// NewInMemoryClique builds a clique of n parties. Each returned Transport
// corresponds to one party and must only be used by that party's
// goroutine.
func NewInMemoryClique[M field.Modulus](n int) []Transport[M] {
	c := &InMemoryClique[M]{
		n:               n,
		revealChans:     map[string]chan shamir.Share[M]{},
		distributeChans: map[string]chan shamir.Share[M]{},
	}
	transports := make([]Transport[M], n)
	for i := range transports {
		transports[i] = &memberTransport[M]{clique: c, self: i}
	}
	return transports
}

func (c *InMemoryClique[M]) channel(store map[string]chan shamir.Share[M], dest, round int) chan shamir.Share[M] {
	key := fmt.Sprintf("%d:%d", dest, round)
	c.mu.Lock()
	defer c.mu.Unlock()
	if ch, ok := store[key]; ok {
		return ch
	}
	ch := make(chan shamir.Share[M], c.n)
	store[key] = ch
	return ch
}

func (c *InMemoryClique[M]) revealChannel(dest, round int) chan shamir.Share[M] {
	return c.channel(c.revealChans, dest, round)
}

func (c *InMemoryClique[M]) distributeChannel(dest, round int) chan shamir.Share[M] {
	return c.channel(c.distributeChans, dest, round)
}

// memberTransport is the per-party view of an InMemoryClique. It is not
// safe for concurrent use by more than one goroutine, since its round
// counters are unsynchronized local state.
type memberTransport[M field.Modulus] struct {
	clique       *InMemoryClique[M]
	self         int
	revealRound  int
	distribRound int
}

func (m *memberTransport[M]) RevealShare(ctx context.Context, share shamir.Share[M]) (field.Element[M], error) {
	round := m.revealRound
	m.revealRound++
	n := m.clique.n

	for dest := 0; dest < n; dest++ {
		select {
		case m.clique.revealChannel(dest, round) <- share:
		case <-ctx.Done():
			return field.Element[M]{}, fmt.Errorf("%w: %v", ErrRoundAborted, ctx.Err())
		}
	}

	inbox := m.clique.revealChannel(m.self, round)
	shares := make([]shamir.Share[M], 0, n)
	for i := 0; i < n; i++ {
		select {
		case s := <-inbox:
			shares = append(shares, s)
		case <-ctx.Done():
			return field.Element[M]{}, fmt.Errorf("%w: %v", ErrRoundAborted, ctx.Err())
		}
	}
	return shamir.ReconstructSecret(shares, n)
}

// DistributeSecret is meant to be called concurrently by every party in
// the clique, each sharing its own secret with count == the number of
// parties in the clique; every call contributes one share to each party's
// inbox for this call's round and collects the one share addressed to the
// caller from every other party's matching round.
func (m *memberTransport[M]) DistributeSecret(ctx context.Context, secret field.Element[M], count, threshold int) ([]shamir.Share[M], error) {
	round := m.distribRound
	m.distribRound++

	shares, err := shamir.GenerateShares(rand.Reader, secret, count, threshold)
	if err != nil {
		return nil, fmt.Errorf("clique: distributing secret: %w", err)
	}

	for dest := 0; dest < count; dest++ {
		select {
		case m.clique.distributeChannel(dest, round) <- shares[dest]:
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrRoundAborted, ctx.Err())
		}
	}

	inbox := m.clique.distributeChannel(m.self, round)
	received := make([]shamir.Share[M], 0, count)
	for i := 0; i < count; i++ {
		select {
		case s := <-inbox:
			received = append(received, s)
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrRoundAborted, ctx.Err())
		}
	}
	return received, nil
}
