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

// Or computes the logical OR of a single shared bit, which is just the bit
// itself reshared through UnboundedOr's machinery; see UnboundedOr.
func Or[M field.Modulus](ctx context.Context, r io.Reader, transport clique.Transport[M], supplier beaver.Supplier[M], bit shamir.Share[M], n, threshold int) (shamir.Share[M], error) {
	return UnboundedOr(ctx, r, transport, supplier, []shamir.Share[M]{bit}, n, threshold)
}

// UnboundedOr computes a share of bits[0] | bits[1] | ... | bits[len-1],
// where every input is a share of 0 or 1, grounded in
// shared_or_function/joint_unbounded_or.rs.
//
// The construction: let sum = 1 + sum(bits), and let f be the degree-l
// polynomial (l = len(bits)) with f(1) = 0 and f(2) = ... = f(l+1) = 1.
// Then f(sum) equals the OR of the bits, because sum lands on exactly one
// of those l+1 points depending on how many input bits are 1. f's
// Lagrange coefficients at 1..l+1 are converted to monomial coefficients
// via the cached inverse-Vandermonde transform, and f(sum) is evaluated
// obliviously using an unbounded multiplication chain of "cancellation
// factors" built from independent random helpers so only the helper
// product, never sum itself, is ever revealed.
func UnboundedOr[M field.Modulus](ctx context.Context, r io.Reader, transport clique.Transport[M], supplier beaver.Supplier[M], bits []shamir.Share[M], n, threshold int) (shamir.Share[M], error) {
	if len(bits) == 0 {
		return shamir.Share[M]{}, fmt.Errorf("mpc: UnboundedOr requires at least one bit")
	}
	degree := len(bits)

	bitSum, err := shamir.SumShares(bits)
	if err != nil {
		return shamir.Share[M]{}, fmt.Errorf("mpc: summing bits: %w", err)
	}
	sum := shamir.AddScalar(bitSum, field.One[M]())

	lagrange := make([]int, degree+1)
	for a := 1; a <= degree+1; a++ {
		if a != 1 {
			lagrange[a-1] = 1
		}
	}

	monomial := make([]field.Element[M], degree+1)
	for i := 0; i <= degree; i++ {
		acc := field.Zero[M]()
		for j, c := range lagrange {
			if c == 0 {
				continue
			}
			acc = acc.Add(inverseVandermondeEntry[M](i, j, degree+1))
		}
		monomial[i] = acc
	}

	helpers := make([]shamir.Share[M], degree)
	for i := range helpers {
		h, err := GenerateRandomNumber[M](ctx, r, transport, n, threshold)
		if err != nil {
			return shamir.Share[M]{}, fmt.Errorf("mpc: generating OR helper %d: %w", i, err)
		}
		helpers[i] = h
	}

	invertedHelpers, err := UnboundedInverse(ctx, r, transport, supplier, helpers, n, threshold)
	if err != nil {
		return shamir.Share[M]{}, fmt.Errorf("mpc: inverting helpers: %w", err)
	}

	cancellationFactors := make([]shamir.Share[M], degree)
	cancellationFactors[0] = invertedHelpers[0]
	if degree > 1 {
		chainPairs := make([]Pair[M], degree-1)
		for i := 0; i < degree-1; i++ {
			chainPairs[i] = Pair[M]{Lhs: helpers[i], Rhs: invertedHelpers[i+1]}
		}
		chained, err := UnboundedMultiply(ctx, transport, supplier, chainPairs)
		if err != nil {
			return shamir.Share[M]{}, fmt.Errorf("mpc: chaining cancellation factors: %w", err)
		}
		copy(cancellationFactors[1:], chained)
	}

	factorPairs := make([]Pair[M], degree)
	for i, f := range cancellationFactors {
		factorPairs[i] = Pair[M]{Lhs: sum, Rhs: f}
	}
	factors, err := UnboundedMultiply(ctx, transport, supplier, factorPairs)
	if err != nil {
		return shamir.Share[M]{}, fmt.Errorf("mpc: multiplying sum by cancellation factors: %w", err)
	}

	revealedFactors := make([]field.Element[M], degree)
	for i, f := range factors {
		v, err := transport.RevealShare(ctx, f)
		if err != nil {
			return shamir.Share[M]{}, fmt.Errorf("mpc: revealing factor %d: %w", i, err)
		}
		revealedFactors[i] = v
	}

	result := shamir.AddScalar(scalePowerTerm(helpers[0], revealedFactors[:1], monomial[1]), monomial[0])
	for power := 2; power <= degree; power++ {
		term := scalePowerTerm(helpers[power-1], revealedFactors[:power], monomial[power])
		result, err = shamir.AddShares(result, term)
		if err != nil {
			return shamir.Share[M]{}, fmt.Errorf("mpc: accumulating polynomial term %d: %w", power, err)
		}
	}
	return result, nil
}

// scalePowerTerm computes helper * product(revealedProduct) *
// monomialCoefficient, one term of the evaluated polynomial.
func scalePowerTerm[M field.Modulus](helper shamir.Share[M], revealedProduct []field.Element[M], monomialCoefficient field.Element[M]) shamir.Share[M] {
	scalar := field.Product(revealedProduct).Mul(monomialCoefficient)
	return shamir.MultiplyScalar(helper, scalar)
}
