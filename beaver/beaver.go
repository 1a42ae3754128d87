// Package beaver specifies the contract for obtaining Beaver triples
// (component H), grounded in
// original_source/jester_sharing/multiplication/beaver_randomization_multiplication.rs's
// BeaverCommunicationScheme: a triple ([a], [b], [c]) of shares such that
// c = a*b, consumed by secure multiplication to rerandomize a product
// without revealing either factor.
//
// How triples are actually produced (a trusted dealer, a precomputation
// protocol, or an offline MPC phase) is out of this toolkit's scope per
// the spec's Non-goals; Supplier is an interface contract, with an
// in-memory trusted-dealer realization for tests.
package beaver

import (
	"context"

	"github.com/silverline-crypto/mpctoolkit/field"
	"github.com/silverline-crypto/mpctoolkit/shamir"
)

// Triple is a share of three correlated random values a, b, c = a*b, one
// triple per secure multiplication consumed.
type Triple[M field.Modulus] struct {
	A, B, C shamir.Share[M]
}

// Supplier obtains Beaver triples for secure multiplication. Calls must
// not be issued concurrently against the same Supplier, mirroring the
// original scheme's "cannot be called in parallel" constraint: triples
// are assigned to callers in the order requested, and every participant
// must consume shares of the same triple for a given multiplication.
type Supplier[M field.Modulus] interface {
	// Threshold returns the reconstruction threshold of the secret
	// sharing scheme the supplied triples were generated under.
	Threshold() int

	// ObtainBeaverTriples returns count fresh triples.
	ObtainBeaverTriples(ctx context.Context, count int) ([]Triple[M], error)
}
