package mpc

import (
	"context"
	"fmt"

	"github.com/silverline-crypto/mpctoolkit/beaver"
	"github.com/silverline-crypto/mpctoolkit/clique"
	"github.com/silverline-crypto/mpctoolkit/field"
	"github.com/silverline-crypto/mpctoolkit/shamir"
)

// ConditionalSelect returns a share of lhs if condition is a share of 1,
// or rhs if condition is a share of 0, grounded in
// conditional_selection/joint_conditional_selection.rs:
// rhs + condition*(lhs - rhs). Behavior is undefined if condition shares
// anything other than 0 or 1.
func ConditionalSelect[M field.Modulus](ctx context.Context, transport clique.Transport[M], supplier beaver.Supplier[M], condition, lhs, rhs shamir.Share[M]) (shamir.Share[M], error) {
	difference, err := shamir.SubShares(lhs, rhs)
	if err != nil {
		return shamir.Share[M]{}, fmt.Errorf("mpc: computing lhs - rhs: %w", err)
	}
	product, err := Multiply(ctx, transport, supplier, condition, difference)
	if err != nil {
		return shamir.Share[M]{}, fmt.Errorf("mpc: multiplying condition by difference: %w", err)
	}
	return shamir.AddShares(product, rhs)
}
