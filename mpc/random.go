// Package mpc implements the joint secure-computation primitives built on
// top of a clique of parties holding Shamir shares: joint random number and
// bit generation (component I), Beaver-rerandomized secure multiplication
// (component J), joint inversion (component K), conditional selection
// (component L), unbounded OR via a cached inverse-Vandermonde transform
// (component M), and a composed Protocol type gluing all of them together
// (component O).
//
// Every function here is grounded in original_source/jester_sharing's
// protocol implementations, translated from its async trait-delegate
// style into plain Go functions parameterized by the field M and taking
// the collaborators (clique.Transport, beaver.Supplier) they need.
package mpc

import (
	"context"
	"fmt"
	"io"

	"github.com/silverline-crypto/mpctoolkit/beaver"
	"github.com/silverline-crypto/mpctoolkit/clique"
	"github.com/silverline-crypto/mpctoolkit/field"
	"github.com/silverline-crypto/mpctoolkit/shamir"
)

// GenerateRandomNumber runs one joint random number generation round,
// grounded in random_number_generation/sum_random_number_generation.rs: a
// random value is sampled locally, distributed to the clique, and every
// party sums the shares it receives. No single party learns the result.
func GenerateRandomNumber[M field.Modulus](ctx context.Context, r io.Reader, transport clique.Transport[M], n, threshold int) (shamir.Share[M], error) {
	partial, err := field.GenerateRandomMember[M](r)
	if err != nil {
		return shamir.Share[M]{}, fmt.Errorf("mpc: sampling local contribution: %w", err)
	}
	received, err := transport.DistributeSecret(ctx, partial, n, threshold)
	if err != nil {
		return shamir.Share[M]{}, fmt.Errorf("mpc: distributing contribution: %w", err)
	}
	return shamir.SumShares(received)
}

// GenerateNonZeroRandomNumber works like GenerateRandomNumber, except that
// each party redraws its own local contribution until it is nonzero
// (up to maxNonZeroRetries draws) before distributing it, grounded in
// random_number_generation/sum_non_zero_random_number_generation.rs. Only
// the local contributions are checked: the joint sum is never revealed, so
// it is not guaranteed to be nonzero.
func GenerateNonZeroRandomNumber[M field.Modulus](ctx context.Context, r io.Reader, transport clique.Transport[M], n, threshold int) (shamir.Share[M], error) {
	for attempt := 0; attempt < maxNonZeroRetries; attempt++ {
		partial, err := field.GenerateRandomMember[M](r)
		if err != nil {
			return shamir.Share[M]{}, fmt.Errorf("mpc: sampling local contribution: %w", err)
		}
		if partial.IsZero() {
			continue
		}
		received, err := transport.DistributeSecret(ctx, partial, n, threshold)
		if err != nil {
			return shamir.Share[M]{}, fmt.Errorf("mpc: distributing contribution: %w", err)
		}
		return shamir.SumShares(received)
	}
	return shamir.Share[M]{}, ErrNonZeroRetriesExceeded
}

// GenerateRandomBit runs a joint random bit generation round, grounded in
// random_number_generation/root_random_bit_generation.rs: a random r is
// sampled with GenerateNonZeroRandomNumber, squared under multiplication, revealed, and its
// square root taken in the clear; since the square root is only defined
// up to sign, (r / sqrt(r^2) + 1) / 2 is 0 or 1 with equal probability and
// is a share of a uniformly random bit.
//
// GenerateRandomBit requires a field that supports Sqrt (p ≡ 3 mod 4); it
// returns field.ErrSqrtUnsupported otherwise.
func GenerateRandomBit[M field.Modulus](ctx context.Context, r io.Reader, transport clique.Transport[M], supplier beaver.Supplier[M], n, threshold int) (shamir.Share[M], error) {
	share, err := GenerateNonZeroRandomNumber[M](ctx, r, transport, n, threshold)
	if err != nil {
		return shamir.Share[M]{}, fmt.Errorf("mpc: generating non-zero candidate: %w", err)
	}

	square, err := Multiply[M](ctx, transport, supplier, share, share)
	if err != nil {
		return shamir.Share[M]{}, fmt.Errorf("mpc: squaring candidate: %w", err)
	}

	revealedSquare, err := transport.RevealShare(ctx, square)
	if err != nil {
		return shamir.Share[M]{}, fmt.Errorf("mpc: revealing squared candidate: %w", err)
	}

	root, err := revealedSquare.Sqrt()
	if err != nil {
		return shamir.Share[M]{}, fmt.Errorf("mpc: taking square root of revealed candidate: %w", err)
	}
	rootInverse, err := root.Inverse()
	if err != nil {
		return shamir.Share[M]{}, fmt.Errorf("mpc: inverting square root: %w", err)
	}

	two := field.FromUint[M](2)
	twoInverse, err := two.Inverse()
	if err != nil {
		return shamir.Share[M]{}, fmt.Errorf("mpc: inverting two: %w", err)
	}

	scaled := shamir.MultiplyScalar(share, rootInverse)
	plusOne := shamir.AddScalar(scaled, field.One[M]())
	return shamir.MultiplyScalar(plusOne, twoInverse), nil
}
