// Package shamir implements Shamir's threshold secret sharing scheme
// (component F) over a prime field, grounded in
// original_source/jester_sharing's shamir_secret_sharing.rs: a linear,
// additive threshold scheme where the secret is the constant term of a
// random polynomial and shares are the polynomial evaluated at 1..count.
package shamir

import (
	"fmt"
	"io"
	"math/big"

	"github.com/silverline-crypto/mpctoolkit/field"
)

// Share is one point (x, f(x)) on the sharing polynomial. X is always >= 1;
// x == 0 would reveal the secret itself and is never produced by
// GenerateShares.
type Share[M field.Modulus] struct {
	X int
	Y field.Element[M]
}

// ErrInvalidThreshold is returned when a threshold below 2 is requested; a
// threshold of 0 or 1 would make the secret a public, unshared quantity.
var ErrInvalidThreshold = fmt.Errorf("shamir: threshold must be greater than 1")

// GenerateShares builds a degree-(threshold-1) random polynomial with
// secret as its constant term, and returns count shares evaluated at
// x = 1..count.
func GenerateShares[M field.Modulus](r io.Reader, secret field.Element[M], count, threshold int) ([]Share[M], error) {
	if threshold <= 1 {
		return nil, ErrInvalidThreshold
	}

	coefficients := make([]field.Element[M], threshold-1)
	for i := range coefficients {
		c, err := field.GenerateRandomMember[M](r)
		if err != nil {
			return nil, fmt.Errorf("shamir: sampling polynomial coefficient: %w", err)
		}
		coefficients[i] = c
	}

	shares := make([]Share[M], count)
	for x := 1; x <= count; x++ {
		acc := secret
		for i, c := range coefficients {
			xPow := new(big.Int).Exp(big.NewInt(int64(x)), big.NewInt(int64(i+1)), nil)
			acc = acc.Add(c.Mul(field.FromBigUint[M](xPow)))
		}
		shares[x-1] = Share[M]{X: x, Y: acc}
	}
	return shares, nil
}

// ReconstructSecret recovers f(0) via Lagrange interpolation from at least
// threshold of the given shares. threshold must match the value passed to
// GenerateShares; only the first threshold shares are used.
func ReconstructSecret[M field.Modulus](shares []Share[M], threshold int) (field.Element[M], error) {
	if len(shares) < threshold {
		return field.Element[M]{}, fmt.Errorf("shamir: need at least %d shares, got %d", threshold, len(shares))
	}
	used := shares[:threshold]

	terms := make([]field.Element[M], len(used))
	for idx, share := range used {
		num := field.One[M]()
		den := field.One[M]()
		for jdx, other := range used {
			if idx == jdx {
				continue
			}
			num = num.Mul(field.FromSigned[M](-int64(other.X)))
			den = den.Mul(field.FromSigned[M](int64(share.X - other.X)))
		}
		denInv, err := den.Inverse()
		if err != nil {
			return field.Element[M]{}, fmt.Errorf("shamir: duplicate x-coordinate among shares: %w", err)
		}
		terms[idx] = share.Y.Mul(num.Mul(denInv))
	}
	return field.Sum(terms), nil
}

// AddShares adds two shares taken at the same x-coordinate; Shamir sharing
// is additively homomorphic, so the result is a valid share of the sum of
// the two original secrets.
func AddShares[M field.Modulus](lhs, rhs Share[M]) (Share[M], error) {
	if lhs.X != rhs.X {
		return Share[M]{}, fmt.Errorf("shamir: shares at different x-coordinates cannot be combined (%d != %d)", lhs.X, rhs.X)
	}
	return Share[M]{X: lhs.X, Y: lhs.Y.Add(rhs.Y)}, nil
}

// SubShares subtracts rhs from lhs; both must share an x-coordinate.
func SubShares[M field.Modulus](lhs, rhs Share[M]) (Share[M], error) {
	if lhs.X != rhs.X {
		return Share[M]{}, fmt.Errorf("shamir: shares at different x-coordinates cannot be combined (%d != %d)", lhs.X, rhs.X)
	}
	return Share[M]{X: lhs.X, Y: lhs.Y.Sub(rhs.Y)}, nil
}

// AddScalar adds a public scalar to a share, yielding a share of
// secret + scalar.
func AddScalar[M field.Modulus](share Share[M], scalar field.Element[M]) Share[M] {
	return Share[M]{X: share.X, Y: share.Y.Add(scalar)}
}

// SubScalar subtracts a public scalar from a share.
func SubScalar[M field.Modulus](share Share[M], scalar field.Element[M]) Share[M] {
	return Share[M]{X: share.X, Y: share.Y.Sub(scalar)}
}

// MultiplyScalar scales a share by a public scalar, yielding a share of
// scalar * secret.
func MultiplyScalar[M field.Modulus](share Share[M], scalar field.Element[M]) Share[M] {
	return Share[M]{X: share.X, Y: share.Y.Mul(scalar)}
}

// SumShares adds a non-empty slice of shares taken at the same
// x-coordinate. It returns an error if the slice is empty or the shares
// disagree on x.
func SumShares[M field.Modulus](shares []Share[M]) (Share[M], error) {
	if len(shares) == 0 {
		return Share[M]{}, fmt.Errorf("shamir: cannot sum an empty set of shares")
	}
	x := shares[0].X
	ys := make([]field.Element[M], len(shares))
	for i, s := range shares {
		if s.X != x {
			return Share[M]{}, fmt.Errorf("shamir: shares at different x-coordinates cannot be summed (%d != %d)", x, s.X)
		}
		ys[i] = s.Y
	}
	return Share[M]{X: x, Y: field.Sum(ys)}, nil
}
