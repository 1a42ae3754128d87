package mpc

import (
	"context"
	"fmt"

	"github.com/silverline-crypto/mpctoolkit/beaver"
	"github.com/silverline-crypto/mpctoolkit/clique"
	"github.com/silverline-crypto/mpctoolkit/field"
	"github.com/silverline-crypto/mpctoolkit/shamir"
)

// Pair is one (lhs, rhs) input to a batched secure multiplication.
type Pair[M field.Modulus] struct {
	Lhs, Rhs shamir.Share[M]
}

// Multiply performs one Beaver-rerandomized secure multiplication,
// grounded in multiplication/beaver_randomization_multiplication.rs: given
// a fresh triple (a, b, c = a*b), it reveals epsilon = lhs - a and
// delta = rhs - b, then reconstructs a share of lhs*rhs as
// c + b*epsilon + a*delta + epsilon*delta, without revealing lhs or rhs.
func Multiply[M field.Modulus](ctx context.Context, transport clique.Transport[M], supplier beaver.Supplier[M], lhs, rhs shamir.Share[M]) (shamir.Share[M], error) {
	results, err := UnboundedMultiply(ctx, transport, supplier, []Pair[M]{{Lhs: lhs, Rhs: rhs}})
	if err != nil {
		return shamir.Share[M]{}, err
	}
	return results[0], nil
}

// UnboundedMultiply performs a batch of Beaver-rerandomized secure
// multiplications: one triple is obtained per pair in a single supplier
// call, avoiding the serialized triple-generation cost a one-at-a-time
// caller would pay. Reveals are issued per pair, since clique.Transport
// reveals one share per call.
func UnboundedMultiply[M field.Modulus](ctx context.Context, transport clique.Transport[M], supplier beaver.Supplier[M], pairs []Pair[M]) ([]shamir.Share[M], error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	triples, err := supplier.ObtainBeaverTriples(ctx, len(pairs))
	if err != nil {
		return nil, fmt.Errorf("mpc: obtaining beaver triples: %w", err)
	}
	if len(triples) != len(pairs) {
		return nil, fmt.Errorf("mpc: supplier returned %d triples, wanted %d", len(triples), len(pairs))
	}

	results := make([]shamir.Share[M], len(pairs))
	for i, pair := range pairs {
		triple := triples[i]

		epsilonShare, err := shamir.SubShares(pair.Lhs, triple.A)
		if err != nil {
			return nil, fmt.Errorf("mpc: computing epsilon share: %w", err)
		}
		deltaShare, err := shamir.SubShares(pair.Rhs, triple.B)
		if err != nil {
			return nil, fmt.Errorf("mpc: computing delta share: %w", err)
		}

		epsilon, err := transport.RevealShare(ctx, epsilonShare)
		if err != nil {
			return nil, fmt.Errorf("mpc: revealing epsilon: %w", err)
		}
		delta, err := transport.RevealShare(ctx, deltaShare)
		if err != nil {
			return nil, fmt.Errorf("mpc: revealing delta: %w", err)
		}

		bEpsilon := shamir.MultiplyScalar(triple.B, epsilon)
		aDelta := shamir.MultiplyScalar(triple.A, delta)

		combined, err := shamir.AddShares(triple.C, bEpsilon)
		if err != nil {
			return nil, fmt.Errorf("mpc: combining c + b*epsilon: %w", err)
		}
		combined, err = shamir.AddShares(combined, aDelta)
		if err != nil {
			return nil, fmt.Errorf("mpc: combining + a*delta: %w", err)
		}

		results[i] = shamir.AddScalar(combined, epsilon.Mul(delta))
	}
	return results, nil
}
