// Package clique specifies the communication contract for a clique of N
// mutually-connected parties (component G), grounded in
// original_source/jester_sharing's communication/mod.rs
// CliqueCommunicationScheme: every party can reach every other party, so a
// secret is revealed by broadcasting one's own share and collecting
// everyone else's, and a new secret is distributed by sending one share to
// each participant.
//
// Network transport itself is out of this toolkit's scope per the spec's
// Non-goals; Transport is an interface contract only. Blocking calls take a
// context.Context so callers can bound a round with a deadline or
// cancellation, the same pattern wyf-ACCEPT-eth2030 uses for its network
// round trips.
package clique

import (
	"context"
	"errors"

	"github.com/silverline-crypto/mpctoolkit/field"
	"github.com/silverline-crypto/mpctoolkit/shamir"
)

// ErrRoundAborted is returned when a reveal or distribute round could not
// complete, e.g. because ctx was canceled or a peer dropped out before
// enough shares arrived.
var ErrRoundAborted = errors.New("clique: round aborted before completion")

// Transport is the clique communication contract for parties sharing
// secrets over field M.
type Transport[M field.Modulus] interface {
	// RevealShare broadcasts the caller's own share and blocks until every
	// party's share has been collected, returning the reconstructed
	// secret.
	RevealShare(ctx context.Context, share shamir.Share[M]) (field.Element[M], error)

	// DistributeSecret shares secret among all N parties, sending one
	// share to each, and returns the shares received from every
	// participant, the caller's own share included.
	DistributeSecret(ctx context.Context, secret field.Element[M], count, threshold int) ([]shamir.Share[M], error)
}
