package beaver

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/silverline-crypto/mpctoolkit/field"
	"github.com/silverline-crypto/mpctoolkit/shamir"
)

// trustedDealer is shared state behind a fleet of per-party Supplier
// views: it samples a, b, computes c = a*b, and shares all three across
// every party, queuing each party's share of every batch it generates.
// This is a trusted-dealer realization suitable for tests and
// single-process simulations, not production deployment: the dealer sees
// every share in the clear.
type trustedDealer[M field.Modulus] struct {
	mu        sync.Mutex
	r         io.Reader
	n         int
	threshold int
	queues    [][]Triple[M]
}

// NewTrustedDealerSuppliers builds n Supplier views over a single trusted
// dealer: every view's ObtainBeaverTriples call returns that party's share
// of the same underlying batch of triples as its peers.
func NewTrustedDealerSuppliers[M field.Modulus](r io.Reader, n, threshold int) []Supplier[M] {
	d := &trustedDealer[M]{
		r:         r,
		n:         n,
		threshold: threshold,
		queues:    make([][]Triple[M], n),
	}
	suppliers := make([]Supplier[M], n)
	for i := range suppliers {
		suppliers[i] = &dealerView[M]{dealer: d, party: i}
	}
	return suppliers
}

func (d *trustedDealer[M]) threshold_() int { return d.threshold }

// fillUpTo generates batches until party has at least count queued
// triples, then pops and returns the first count of them.
func (d *trustedDealer[M]) fillUpTo(party, count int) ([]Triple[M], error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for len(d.queues[party]) < count {
		a, err := field.GenerateRandomMember[M](d.r)
		if err != nil {
			return nil, fmt.Errorf("beaver: sampling triple factor a: %w", err)
		}
		b, err := field.GenerateRandomMember[M](d.r)
		if err != nil {
			return nil, fmt.Errorf("beaver: sampling triple factor b: %w", err)
		}
		c := a.Mul(b)

		aShares, err := shamir.GenerateShares(d.r, a, d.n, d.threshold)
		if err != nil {
			return nil, fmt.Errorf("beaver: sharing triple factor a: %w", err)
		}
		bShares, err := shamir.GenerateShares(d.r, b, d.n, d.threshold)
		if err != nil {
			return nil, fmt.Errorf("beaver: sharing triple factor b: %w", err)
		}
		cShares, err := shamir.GenerateShares(d.r, c, d.n, d.threshold)
		if err != nil {
			return nil, fmt.Errorf("beaver: sharing triple product c: %w", err)
		}

		for i := 0; i < d.n; i++ {
			d.queues[i] = append(d.queues[i], Triple[M]{A: aShares[i], B: bShares[i], C: cShares[i]})
		}
	}

	out := append([]Triple[M]{}, d.queues[party][:count]...)
	d.queues[party] = d.queues[party][count:]
	return out, nil
}

// dealerView is the per-party Supplier facing a shared trustedDealer.
type dealerView[M field.Modulus] struct {
	dealer *trustedDealer[M]
	party  int
}

var _ Supplier[field.Mersenne61Modulus] = (*dealerView[field.Mersenne61Modulus])(nil)

func (v *dealerView[M]) Threshold() int { return v.dealer.threshold_() }

func (v *dealerView[M]) ObtainBeaverTriples(ctx context.Context, count int) ([]Triple[M], error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return v.dealer.fillUpTo(v.party, count)
}
