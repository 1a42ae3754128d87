package mpc

import (
	"context"
	"io"

	"github.com/silverline-crypto/mpctoolkit/beaver"
	"github.com/silverline-crypto/mpctoolkit/clique"
	"github.com/silverline-crypto/mpctoolkit/field"
	"github.com/silverline-crypto/mpctoolkit/shamir"
)

// Protocol composes a party's view of a clique (its Transport), its
// Beaver triple Supplier, and its entropy source into a single value with
// one method per joint primitive, so a caller does not have to thread
// ctx/transport/supplier/n/threshold through every call site by hand.
//
// This is component O's composition glue: the original scheme expresses
// it as a "Delegate" marker trait picking a concrete realization for each
// of RandomNumberGenerationScheme, MultiplicationScheme,
// InversionScheme, ConditionalSelectionScheme and OrFunctionScheme; Go
// has no trait-delegate mechanism, so Protocol plays the same role as a
// single struct whose methods ARE those chosen realizations, the way
// ratchet.Scheme bundles its field, hash, and cipher choices behind one
// type.
type Protocol[M field.Modulus] struct {
	Transport clique.Transport[M]
	Supplier  beaver.Supplier[M]
	Rand      io.Reader
	N         int
	Threshold int
}

// NewProtocol builds a Protocol from its collaborators. supplier's
// threshold must agree with threshold.
func NewProtocol[M field.Modulus](transport clique.Transport[M], supplier beaver.Supplier[M], r io.Reader, n, threshold int) *Protocol[M] {
	return &Protocol[M]{Transport: transport, Supplier: supplier, Rand: r, N: n, Threshold: threshold}
}

func (p *Protocol[M]) RandomNumber(ctx context.Context) (shamir.Share[M], error) {
	return GenerateRandomNumber[M](ctx, p.Rand, p.Transport, p.N, p.Threshold)
}

func (p *Protocol[M]) NonZeroRandomNumber(ctx context.Context) (shamir.Share[M], error) {
	return GenerateNonZeroRandomNumber[M](ctx, p.Rand, p.Transport, p.N, p.Threshold)
}

func (p *Protocol[M]) RandomBit(ctx context.Context) (shamir.Share[M], error) {
	return GenerateRandomBit[M](ctx, p.Rand, p.Transport, p.Supplier, p.N, p.Threshold)
}

func (p *Protocol[M]) Multiply(ctx context.Context, lhs, rhs shamir.Share[M]) (shamir.Share[M], error) {
	return Multiply[M](ctx, p.Transport, p.Supplier, lhs, rhs)
}

func (p *Protocol[M]) UnboundedMultiply(ctx context.Context, pairs []Pair[M]) ([]shamir.Share[M], error) {
	return UnboundedMultiply[M](ctx, p.Transport, p.Supplier, pairs)
}

func (p *Protocol[M]) Inverse(ctx context.Context, share shamir.Share[M]) (shamir.Share[M], error) {
	return Inverse[M](ctx, p.Rand, p.Transport, p.Supplier, share, p.N, p.Threshold)
}

func (p *Protocol[M]) UnboundedInverse(ctx context.Context, shares []shamir.Share[M]) ([]shamir.Share[M], error) {
	return UnboundedInverse[M](ctx, p.Rand, p.Transport, p.Supplier, shares, p.N, p.Threshold)
}

func (p *Protocol[M]) ConditionalSelect(ctx context.Context, condition, lhs, rhs shamir.Share[M]) (shamir.Share[M], error) {
	return ConditionalSelect[M](ctx, p.Transport, p.Supplier, condition, lhs, rhs)
}

func (p *Protocol[M]) Or(ctx context.Context, bit shamir.Share[M]) (shamir.Share[M], error) {
	return Or[M](ctx, p.Rand, p.Transport, p.Supplier, bit, p.N, p.Threshold)
}

func (p *Protocol[M]) UnboundedOr(ctx context.Context, bits []shamir.Share[M]) (shamir.Share[M], error) {
	return UnboundedOr[M](ctx, p.Rand, p.Transport, p.Supplier, bits, p.N, p.Threshold)
}

func (p *Protocol[M]) Reveal(ctx context.Context, share shamir.Share[M]) (field.Element[M], error) {
	return p.Transport.RevealShare(ctx, share)
}

func (p *Protocol[M]) Distribute(ctx context.Context, secret field.Element[M]) ([]shamir.Share[M], error) {
	return p.Transport.DistributeSecret(ctx, secret, p.N, p.Threshold)
}
