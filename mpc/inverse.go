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

// UnboundedInverse jointly inverts a batch of shares, grounded in
// inversion/unbounded_inversion.rs. Per input it spends one distribute
// round (the helper), two reveals (the masking multiplication) and one
// more reveal (the masked value). Each share x is
// masked by an independent random helper r (x*r, rerandomized via secure
// multiplication), the masked product is revealed, and the inverse is
// recovered as r * (x*r)^-1 = x^-1 without ever revealing x.
//
// Every input share must be nonzero; a zero input produces unusable
// garbage output rather than an error (revealing that fact would itself
// leak which input was zero), exactly as the original scheme documents.
func UnboundedInverse[M field.Modulus](ctx context.Context, r io.Reader, transport clique.Transport[M], supplier beaver.Supplier[M], shares []shamir.Share[M], n, threshold int) ([]shamir.Share[M], error) {
	if len(shares) == 0 {
		return nil, nil
	}

	helpers := make([]shamir.Share[M], len(shares))
	for i := range shares {
		h, err := GenerateRandomNumber[M](ctx, r, transport, n, threshold)
		if err != nil {
			return nil, fmt.Errorf("mpc: generating inversion helper %d: %w", i, err)
		}
		helpers[i] = h
	}

	pairs := make([]Pair[M], len(shares))
	for i := range shares {
		pairs[i] = Pair[M]{Lhs: shares[i], Rhs: helpers[i]}
	}
	masked, err := UnboundedMultiply(ctx, transport, supplier, pairs)
	if err != nil {
		return nil, fmt.Errorf("mpc: masking shares with helpers: %w", err)
	}

	results := make([]shamir.Share[M], len(shares))
	for i, m := range masked {
		revealed, err := transport.RevealShare(ctx, m)
		if err != nil {
			return nil, fmt.Errorf("mpc: revealing masked share %d: %w", i, err)
		}
		revealedInverse, err := revealed.Inverse()
		if err != nil {
			return nil, fmt.Errorf("mpc: inverting revealed masked value %d: %w", i, err)
		}
		results[i] = shamir.MultiplyScalar(helpers[i], revealedInverse)
	}
	return results, nil
}

// Inverse jointly inverts a single share; see UnboundedInverse.
func Inverse[M field.Modulus](ctx context.Context, r io.Reader, transport clique.Transport[M], supplier beaver.Supplier[M], share shamir.Share[M], n, threshold int) (shamir.Share[M], error) {
	results, err := UnboundedInverse(ctx, r, transport, supplier, []shamir.Share[M]{share}, n, threshold)
	if err != nil {
		return shamir.Share[M]{}, err
	}
	return results[0], nil
}
